package branch

import (
	"context"

	"github.com/gin-gonic/gin"
)

// branchIDKey é a chave usada para armazenar o branch_id no contexto
type branchIDKey struct{}

// BranchMiddleware define a filial da requisição. O cabeçalho branch-id tem
// precedência sobre a filial gravada no token pelo middleware de autenticação.
func BranchMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		branchID := c.GetHeader("branch-id")
		if branchID == "" {
			branchID = c.GetString("branch_id")
		}
		if branchID != "" {
			c.Set("branch_id", branchID)
			c.Request = c.Request.WithContext(WithBranchID(c.Request.Context(), branchID))
		}
		c.Next()
	}
}

// WithBranchID devolve um contexto que carrega a filial
func WithBranchID(ctx context.Context, branchID string) context.Context {
	return context.WithValue(ctx, branchIDKey{}, branchID)
}

// GetBranchID recupera o branch_id do contexto, se existir
func GetBranchID(ctx context.Context) string {
	if branchID, ok := ctx.Value(branchIDKey{}).(string); ok {
		return branchID
	}
	return ""
}
