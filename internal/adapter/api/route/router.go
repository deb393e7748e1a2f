// Package route registra as rotas REST da API sob /api.
package route

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/branch"
	"github.com/hugohenrick/erp-multinegocio/pkg/tenant"
)

// BasePath é o prefixo de todas as rotas da API
const BasePath = "/api"

// Controllers agrupa os controllers expostos pela API
type Controllers struct {
	Auth          *controller.AuthController
	Company       *controller.CompanyController
	Branch        *controller.BranchController
	User          *controller.UserController
	Client        *controller.ClientController
	Product       *controller.ProductController
	Sale          *controller.SaleController
	Coupon        *controller.CouponController
	Finance       *controller.FinanceController
	Appointment   *controller.AppointmentController
	Integration   *controller.IntegrationController
	Notification  *controller.NotificationController
	Transfer      *controller.TransferController
	HealthChecker func(*gin.Context) error
}

// Dependencies são os middlewares compartilhados pelas rotas
type Dependencies struct {
	JWT             *auth.JWTService
	TenantValidator tenant.TenantValidator
}

// SetupRoutes registra todas as rotas no router
func SetupRoutes(router *gin.Engine, c Controllers, deps Dependencies) *gin.RouterGroup {
	api := router.Group(BasePath)

	api.GET("/health", health(c.HealthChecker))

	// Rotas públicas
	SetupCompanyRoutes(api, c.Company)
	SetupAuthRoutes(api, c.Auth)
	SetupSetupRoutes(api, c.Auth, deps.TenantValidator)

	// Rotas autenticadas: o tenant vem do token e precisa estar ativo
	protected := api.Group("")
	protected.Use(
		auth.JWTAuthMiddleware(deps.JWT),
		tenant.TenantMiddleware(deps.TenantValidator),
		branch.BranchMiddleware(),
	)
	protected.GET("/auth/me", c.Auth.Me)
	protected.GET("/companies/current", c.Company.Current)
	protected.PUT("/companies/current", auth.RoleAuthMiddleware("admin"), c.Company.UpdateCurrent)

	SetupBranchRoutes(protected, c.Branch)
	SetupUserRoutes(protected, c.User)
	SetupClientRoutes(protected, c.Client)
	SetupProductRoutes(protected, c.Product)
	SetupSaleRoutes(protected, c.Sale)
	SetupCouponRoutes(protected, c.Coupon)
	SetupFinanceRoutes(protected, c.Finance)
	SetupAppointmentRoutes(protected, c.Appointment)
	SetupSettingsRoutes(protected, c.Integration, c.Notification)
	SetupTransferRoutes(protected, c.Transfer)

	return api
}

func health(check func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": "1.0.0"})
	}
}
