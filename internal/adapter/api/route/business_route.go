package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
)

// SetupBranchRoutes configura as rotas de filiais; alterações exigem administrador
func SetupBranchRoutes(router *gin.RouterGroup, branchController *controller.BranchController) {
	branchRouter := router.Group("/branches")
	{
		branchRouter.GET("", branchController.List)
		branchRouter.GET("/:id", branchController.Get)

		admin := branchRouter.Group("", auth.RoleAuthMiddleware("admin"))
		admin.POST("", branchController.Create)
		admin.PUT("/:id", branchController.Update)
		admin.DELETE("/:id", branchController.Delete)
	}
}

// SetupUserRoutes configura as rotas de usuários, restritas a administradores
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	userRouter.Use(auth.RoleAuthMiddleware("admin"))
	{
		userRouter.POST("", userController.Create)
		userRouter.GET("", userController.List)
		userRouter.GET("/:id", userController.Get)
		userRouter.PUT("/:id", userController.Update)
		userRouter.DELETE("/:id", userController.Delete)
	}
}

// SetupClientRoutes configura as rotas de clientes e do histórico de atendimento
func SetupClientRoutes(router *gin.RouterGroup, clientController *controller.ClientController) {
	clientRouter := router.Group("/clients")
	{
		clientRouter.POST("", clientController.Create)
		clientRouter.GET("", clientController.List)
		clientRouter.GET("/:id", clientController.Get)
		clientRouter.PUT("/:id", clientController.Update)
		clientRouter.DELETE("/:id", clientController.Delete)

		clientRouter.GET("/:id/messages", clientController.Messages)
		clientRouter.POST("/:id/messages", clientController.SendMessage)
		clientRouter.POST("/:id/messages/inbound", clientController.ReceiveMessage)
	}
}

// SetupProductRoutes configura as rotas do catálogo e do estoque
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController) {
	productRouter := router.Group("/products")
	{
		productRouter.POST("", productController.Create)
		productRouter.GET("", productController.List)
		productRouter.GET("/:id", productController.Get)
		productRouter.PUT("/:id", productController.Update)
		productRouter.DELETE("/:id", productController.Delete)
		productRouter.POST("/:id/stock", productController.AdjustStock)
	}
}

// SetupSaleRoutes configura o caixa
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	{
		saleRouter.POST("", saleController.Checkout)
		saleRouter.GET("", saleController.List)
		saleRouter.GET("/:id", saleController.Get)
	}
}

// SetupCouponRoutes configura as campanhas de cupons
func SetupCouponRoutes(router *gin.RouterGroup, couponController *controller.CouponController) {
	couponRouter := router.Group("/coupons")
	{
		couponRouter.POST("", couponController.Create)
		couponRouter.GET("", couponController.List)
		couponRouter.POST("/validate", couponController.Validate)
		couponRouter.POST("/preview", couponController.Preview)
		couponRouter.GET("/:id", couponController.Get)
		couponRouter.PUT("/:id", couponController.Update)
		couponRouter.DELETE("/:id", couponController.Deactivate)
	}
}

// SetupFinanceRoutes configura os lançamentos financeiros
func SetupFinanceRoutes(router *gin.RouterGroup, financeController *controller.FinanceController) {
	financeRouter := router.Group("/financial-entries")
	{
		financeRouter.POST("", financeController.Create)
		financeRouter.GET("", financeController.List)
		financeRouter.GET("/summary", financeController.Summary)
		financeRouter.GET("/export", financeController.Export)
		financeRouter.POST("/installments", financeController.CreateInstallments)
		financeRouter.GET("/:id", financeController.Get)
		financeRouter.PUT("/:id", financeController.Update)
		financeRouter.DELETE("/:id", financeController.Delete)
		financeRouter.POST("/:id/pay", financeController.Pay)
		financeRouter.POST("/:id/revert", financeController.Revert)
	}
}

// SetupAppointmentRoutes configura a agenda e os lembretes
func SetupAppointmentRoutes(router *gin.RouterGroup, appointmentController *controller.AppointmentController) {
	appointmentRouter := router.Group("/appointments")
	{
		appointmentRouter.POST("", appointmentController.Create)
		appointmentRouter.GET("", appointmentController.List)
		appointmentRouter.GET("/reminders/due", appointmentController.DueReminders)
		appointmentRouter.POST("/reminders/dispatch", appointmentController.DispatchReminders)
		appointmentRouter.GET("/:id", appointmentController.Get)
		appointmentRouter.PUT("/:id", appointmentController.Update)
		appointmentRouter.DELETE("/:id", appointmentController.Delete)
	}
}

// SetupSettingsRoutes configura integrações de agenda e preferências de notificação
func SetupSettingsRoutes(router *gin.RouterGroup, integrationController *controller.IntegrationController, notificationController *controller.NotificationController) {
	integrationRouter := router.Group("/integrations")
	{
		integrationRouter.GET("", integrationController.List)
		integrationRouter.POST("", integrationController.Create)
		integrationRouter.PUT("/:id", integrationController.Update)
	}

	notificationRouter := router.Group("/notification-settings")
	{
		notificationRouter.GET("", notificationController.List)
		notificationRouter.POST("", notificationController.Create)
		notificationRouter.PUT("/:id", notificationController.Update)
		notificationRouter.POST("/:id/test", notificationController.Test)
	}
}

// SetupTransferRoutes configura as transferências entre filiais
func SetupTransferRoutes(router *gin.RouterGroup, transferController *controller.TransferController) {
	transferRouter := router.Group("/transfers")
	{
		transferRouter.POST("", transferController.Create)
		transferRouter.GET("", transferController.List)
		transferRouter.GET("/:id", transferController.Get)
		transferRouter.POST("/:id/complete", transferController.Complete)
		transferRouter.POST("/:id/cancel", transferController.Cancel)
	}
}
