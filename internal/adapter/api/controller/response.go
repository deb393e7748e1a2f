package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
	"github.com/hugohenrick/erp-multinegocio/pkg/tenant"
)

const genericFailure = "Erro interno, tente novamente mais tarde"

// respondError traduz um erro de domínio ou de armazenamento na resposta HTTP.
// Falhas de infraestrutura são registradas no log e nunca expõem detalhes.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	var (
		validation *shared.ValidationError
		shortage   *product.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   validation.Message,
			Details: validation.Field,
			Code:    "validation",
		})
	case errors.Is(err, shared.ErrValidation):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "validation"})
	case errors.As(err, &shortage):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: "Estoque insuficiente",
			Code:  shortage.Code(),
			Data:  shortage.Shortages,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Credenciais inválidas", err.Error()))
	case errors.Is(err, service.ErrUserInactive):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("Usuário inativo", err.Error()))
	case errors.Is(err, shared.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: shared.CodeOf(err)})
	case errors.Is(err, shared.ErrConflict):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: shared.CodeOf(err)})
	case errors.Is(err, shared.ErrBusinessRule):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: shared.CodeOf(err)})
	case errors.Is(err, shared.ErrStorageUnavailable):
		log.Error("Armazenamento indisponível", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Serviço temporariamente indisponível, tente novamente",
			Code:  "storage_unavailable",
		})
	default:
		log.Error("Erro não tratado", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(genericFailure, ""))
	}
}

// badRequest responde 400 para corpo ou parâmetros malformados
func badRequest(ctx *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(message, details))
}

// bindJSON decodifica o corpo; em caso de erro já responde 400
func bindJSON(ctx *gin.Context, request interface{}) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		badRequest(ctx, "Requisição inválida", err)
		return false
	}
	return true
}

// tenantOf devolve o tenant da requisição, gravado pelos middlewares
func tenantOf(ctx *gin.Context) (string, bool) {
	tenantID := tenant.GetTenantID(ctx)
	if tenantID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Tenant ID não encontrado", ""))
		return "", false
	}
	return tenantID, true
}

// paginationOf lê page e page_size da query string
func paginationOf(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	return dto.GetPagination(page, pageSize)
}

// slice devolve a página p de items
func slice[T any](items []T, p dto.Pagination) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
