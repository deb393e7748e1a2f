package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
)

func newService(t *testing.T, now time.Time) *JWTService {
	t.Helper()
	s, err := NewJWTService("segredo-de-teste", time.Hour, "erp-multinegocio-api")
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("tenant-1", "branch-1", "Hugo", "hugo@patas.com.br", "segredo1", user.RoleAdmin)
	require.NoError(t, err)
	return u
}

func TestNewJWTServiceRequiresKey(t *testing.T) {
	_, err := NewJWTService("", time.Hour, "x")
	require.ErrorIs(t, err, ErrMissingJWTKey)

	s, err := NewJWTService("k", 0, "x")
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, s.Expiration())
}

func TestTokenRoundTrip(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newService(t, issued)
	u := testUser(t)

	token, expiresAt, err := s.GenerateToken(u)
	require.NoError(t, err)
	require.Equal(t, issued.Add(time.Hour), expiresAt)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "branch-1", claims.BranchID)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = s.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)

	refreshed, newExpiry, err := s.RefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, issued.Add(3*time.Hour), newExpiry)
	claims, err = s.ValidateToken(refreshed)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	other, err := NewJWTService("outra-chave", time.Hour, "x")
	require.NoError(t, err)
	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = other.RefreshToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newService(t, time.Now())
	u := testUser(t)
	token, _, err := s.GenerateToken(u)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(s), func(c *gin.Context) {
		cu := GetCurrentUser(c)
		c.String(http.StatusOK, cu.TenantID+"|"+cu.Role)
	})
	r.GET("/managers", JWTAuthMiddleware(s), RoleAuthMiddleware("manager"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"valid", "/me", "Bearer " + token, http.StatusOK},
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Token " + token, http.StatusUnauthorized},
		{"garbage", "/me", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"role denied", "/managers", "Bearer " + token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, "tenant-1|admin", rec.Body.String())
			}
		})
	}
}
