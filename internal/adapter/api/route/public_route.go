package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-multinegocio/pkg/tenant"
)

// SetupCompanyRoutes configura o cadastro público de empresas
func SetupCompanyRoutes(router *gin.RouterGroup, companyController *controller.CompanyController) {
	router.POST("/companies", companyController.Create)
}

// SetupAuthRoutes configura as rotas de autenticação que não exigem token
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}

// SetupSetupRoutes configura a criação do primeiro administrador.
// Não exige autenticação, apenas o cabeçalho tenant-id de uma empresa ativa.
func SetupSetupRoutes(router *gin.RouterGroup, authController *controller.AuthController, validator tenant.TenantValidator) {
	setupRouter := router.Group("/setup")
	setupRouter.Use(tenant.TenantMiddleware(validator))
	{
		setupRouter.POST("/admin", authController.CreateAdminUser)
	}
}
