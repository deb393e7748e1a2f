package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

func newRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New(logger.Options{Level: "debug", Format: "json", Out: buf})
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	return r
}

func TestRequestLoggerWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)
	r.GET("/ping", func(c *gin.Context) {
		c.Set("tenant_id", "t-1")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, "t-1", line["tenant_id"])
	assert.EqualValues(t, http.StatusNoContent, line["status"])
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecoveryAnswersJSON(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(&buf)
	r.GET("/boom", func(c *gin.Context) { panic("falhou") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.True(t, strings.Contains(buf.String(), "Panic na requisição"))
}
