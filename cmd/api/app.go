package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/erp-multinegocio/docs"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/route"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/notify"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository/orm"
	"github.com/hugohenrick/erp-multinegocio/internal/config"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
	"github.com/hugohenrick/erp-multinegocio/pkg/middleware"
)

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	log    logger.Logger
	store  storage.Storage
	router *gin.Engine
	server *http.Server
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.TokenTTL(), cfg.JWT.Issuer)
	if err != nil {
		store.Close()
		return nil, err
	}

	// Canais externos são opcionais: sem credenciais os serviços registram a falha
	var sender service.MessageSender
	if cfg.TwilioEnabled() {
		sender = notify.NewTwilioSender(cfg.Twilio, log)
	}
	var notifier service.ChatNotifier
	if cfg.Telegram.BotToken != "" {
		telegram, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, log)
		if err != nil {
			log.Warn("Telegram indisponível", "error", err)
		} else {
			notifier = telegram
		}
	}

	loc := cfg.Location()
	tenancy := service.NewTenancyService(store, log, nil)
	checkout := service.NewCheckoutService(store, log, nil)
	finance := service.NewFinanceService(store, log, nil)
	messaging := service.NewMessagingService(store, sender, log)
	reminders := service.NewReminderService(store, notifier, sender, loc, log, nil)
	inventory := service.NewInventoryService(store, log, nil)
	notifications := service.NewNotificationService(store, notifier, log)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))

	route.SetupRoutes(router, route.Controllers{
		Auth:         controller.NewAuthController(tenancy, jwtService, store, log),
		Company:      controller.NewCompanyController(tenancy, store, log),
		Branch:       controller.NewBranchController(tenancy, store, log),
		User:         controller.NewUserController(tenancy, store, log),
		Client:       controller.NewClientController(store, messaging, loc, log),
		Product:      controller.NewProductController(store, inventory, loc, log),
		Sale:         controller.NewSaleController(checkout, store, loc, log),
		Coupon:       controller.NewCouponController(checkout, store, loc, log),
		Finance:      controller.NewFinanceController(finance, loc, log),
		Appointment:  controller.NewAppointmentController(store, reminders, loc, log),
		Integration:  controller.NewIntegrationController(store, log),
		Notification: controller.NewNotificationController(notifications, store, log),
		Transfer:     controller.NewTransferController(inventory, store, log),
		HealthChecker: func(c *gin.Context) error {
			return store.Ping(c.Request.Context())
		},
	}, route.Dependencies{
		JWT:             jwtService,
		TenantValidator: tenancy,
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		router: router,
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// openStorage abre o backend configurado
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (storage.Storage, error) {
	switch cfg.StorageDriver() {
	case storage.DriverPostgres:
		if cfg.Storage.MigrationsAuto {
			if err := database.RunMigrations(cfg.DatabaseURL(), log); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPostgresPool(ctx, cfg.Database, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		log.Info("Armazenamento PostgreSQL (pgx) conectado")
		return repository.NewPostgresStore(pool, log), nil
	case storage.DriverGorm:
		db, err := database.OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		if err := orm.AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("Armazenamento gorm conectado", "dialect", cfg.Storage.GormDialect)
		return orm.New(db), nil
	case storage.DriverMemory:
		log.Warn("Armazenamento em memória: os dados serão perdidos ao reiniciar")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("driver de armazenamento desconhecido: %q", cfg.Storage.Driver)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "tenant-id", "branch-id", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Start sobe o servidor HTTP e bloqueia até ctx ser cancelado
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Servidor iniciado", "addr", a.server.Addr, "storage", a.store.Driver())
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.store != nil {
		a.store.Close()
	}
}
