package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	tenancy *service.TenancyService
	jwt     *auth.JWTService
	store   storage.Storage
	log     logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(tenancy *service.TenancyService, jwt *auth.JWTService, store storage.Storage, log logger.Logger) *AuthController {
	return &AuthController{tenancy: tenancy, jwt: jwt, store: store, log: log}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param tenant-id header string false "ID do tenant (ou tenant_id no corpo)"
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if !bindJSON(ctx, &request) {
		return
	}

	tenantID := request.TenantID
	if tenantID == "" {
		tenantID = ctx.GetHeader("tenant-id")
	}
	if tenantID == "" {
		badRequest(ctx, "Tenant ID não fornecido", errors.New("informe o cabeçalho tenant-id ou o campo tenant_id"))
		return
	}

	u, err := c.tenancy.Authenticate(ctx.Request.Context(), tenantID, request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	token, expiresAt, err := c.jwt.GenerateToken(u)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}

// RefreshToken renova um token de acesso
// @Summary Renova o token
// @Description Emite um novo token a partir de um token válido ou recém-expirado
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Token atual"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if !bindJSON(ctx, &request) {
		return
	}

	token, expiresAt, err := c.jwt.RefreshToken(request.AccessToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{AccessToken: token, ExpiresAt: expiresAt})
}

// Me devolve o usuário autenticado
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	current := auth.GetCurrentUser(ctx)
	u, err := c.store.Repositories().Users.FindByID(ctx.Request.Context(), current.TenantID, current.ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// CreateAdminUser cria o primeiro administrador de uma empresa
// @Summary Cria o primeiro administrador
// @Description Só funciona enquanto a empresa não tem nenhum usuário
// @Tags setup
// @Accept json
// @Produce json
// @Param tenant-id header string true "ID do tenant"
// @Param user body dto.SetupAdminRequest true "Dados do administrador"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /setup/admin [post]
func (c *AuthController) CreateAdminUser(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}

	var request dto.SetupAdminRequest
	if !bindJSON(ctx, &request) {
		return
	}

	u, err := c.tenancy.CreateFirstAdmin(ctx.Request.Context(), tenantID, request.Name, request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}
