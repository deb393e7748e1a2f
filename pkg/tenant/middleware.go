package tenant

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

// TenantValidator define a interface para validação de tenant
type TenantValidator interface {
	ValidateTenant(ctx context.Context, tenantID string) (bool, error)
}

// TenantMiddleware cria um middleware para validação do tenant. O tenant vem do
// token (já gravado no contexto pelo middleware JWT) ou do cabeçalho tenant-id
// nas rotas públicas.
func TenantMiddleware(validator TenantValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			tenantID = c.GetHeader("tenant-id")
		}
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				"Tenant ID não fornecido",
				ErrTenantNotSpecified.Error(),
			))
			return
		}

		valid, err := validator.ValidateTenant(c.Request.Context(), tenantID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, shared.ErrStorageUnavailable) {
				status = http.StatusServiceUnavailable
			}
			c.AbortWithStatusJSON(status, dto.NewErrorResponse("Erro ao validar tenant", ""))
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				"Tenant inválido",
				ErrTenantNotActive.Error(),
			))
			return
		}

		// Armazenar o tenant ID no contexto
		c.Set("tenant_id", tenantID)
		c.Request = c.Request.WithContext(SetTenantIDContext(c.Request.Context(), tenantID))

		c.Next()
	}
}
