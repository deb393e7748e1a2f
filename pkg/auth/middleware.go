package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/pkg/tenant"
)

// CurrentUser são os dados do usuário autenticado extraídos do token
type CurrentUser struct {
	ID       string
	TenantID string
	Email    string
	Name     string
	Role     string
	BranchID string
}

// JWTAuthMiddleware cria um middleware para autenticação JWT
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obter o token do cabeçalho Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Autenticação requerida",
				"O cabeçalho Authorization não foi fornecido",
			))
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Formato de token inválido",
				"Use o formato 'Bearer <token>'",
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message, err.Error()))
			return
		}

		// Armazenar as claims no contexto
		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Set("branch_id", claims.BranchID)

		c.Request = c.Request.WithContext(tenant.SetTenantIDContext(c.Request.Context(), claims.TenantID))

		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel/função do usuário
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Autenticação requerida", ""))
			return
		}

		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			"Acesso negado",
			"Você não tem permissão para acessar este recurso",
		))
	}
}

// GetCurrentUser obtém as informações do usuário atual do contexto
func GetCurrentUser(c *gin.Context) CurrentUser {
	return CurrentUser{
		ID:       c.GetString("user_id"),
		TenantID: c.GetString("tenant_id"),
		Email:    c.GetString("user_email"),
		Name:     c.GetString("user_name"),
		Role:     c.GetString("user_role"),
		BranchID: c.GetString("branch_id"),
	}
}
