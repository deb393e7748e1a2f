// Package middleware reúne os middlewares HTTP comuns a todas as rotas.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// SlowRequestThreshold é a duração a partir da qual a requisição é registrada como lenta
const SlowRequestThreshold = 500 * time.Millisecond

// RequestIDHeader é o cabeçalho que carrega o ID de correlação da requisição
const RequestIDHeader = "X-Request-ID"

// RequestLogger registra método, rota, status e latência de cada requisição
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
		}
		if tenantID := c.GetString("tenant_id"); tenantID != "" {
			fields = append(fields, "tenant_id", tenantID)
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("Requisição com erro", fields...)
		case latency > SlowRequestThreshold:
			log.Warn("Requisição lenta", fields...)
		default:
			log.Info("Requisição", fields...)
		}
	}
}

// Recovery converte um panic em 500 no formato de erro da API
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("Panic na requisição", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Erro interno, tente novamente mais tarde",
		})
	})
}
