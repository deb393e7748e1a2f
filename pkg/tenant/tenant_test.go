package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

type validatorFunc func(ctx context.Context, tenantID string) (bool, error)

func (f validatorFunc) ValidateTenant(ctx context.Context, tenantID string) (bool, error) {
	return f(ctx, tenantID)
}

func newRouter(v TenantValidator, preset string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if preset != "" {
			c.Set("tenant_id", preset)
		}
		c.Next()
	}, TenantMiddleware(v), func(c *gin.Context) {
		c.String(http.StatusOK, GetTenantID(c)+"|"+GetTenantIDFromContext(c.Request.Context()))
	})
	return r
}

func TestTenantMiddleware(t *testing.T) {
	active := validatorFunc(func(_ context.Context, id string) (bool, error) { return id == "t1", nil })

	tests := []struct {
		name      string
		validator TenantValidator
		preset    string
		header    string
		status    int
		body      string
	}{
		{name: "from header", validator: active, header: "t1", status: http.StatusOK, body: "t1|t1"},
		{name: "from token wins", validator: active, preset: "t1", header: "other", status: http.StatusOK, body: "t1|t1"},
		{name: "missing", validator: active, status: http.StatusBadRequest},
		{name: "inactive", validator: active, header: "t2", status: http.StatusForbidden},
		{name: "storage down", validator: validatorFunc(func(context.Context, string) (bool, error) {
			return false, shared.Unavailable("validar tenant", errors.New("dial tcp"))
		}), header: "t1", status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("tenant-id", tt.header)
			}
			rec := httptest.NewRecorder()
			newRouter(tt.validator, tt.preset).ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				require.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
