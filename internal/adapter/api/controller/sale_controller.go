package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/branch"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// SaleController gerencia o caixa e o histórico de vendas
type SaleController struct {
	checkout *service.CheckoutService
	repo     sale.Repository
	loc      *time.Location
	log      logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(checkout *service.CheckoutService, store storage.Storage, loc *time.Location, log logger.Logger) *SaleController {
	return &SaleController{checkout: checkout, repo: store.Repositories().Sales, loc: loc, log: log}
}

// Checkout fecha uma venda
// @Summary Finaliza uma venda
// @Description Precifica o carrinho, aplica cupom e dá baixa no estoque numa única transação
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param branch-id header string false "Filial da venda quando não vier no corpo"
// @Param sale body dto.CheckoutRequest true "Carrinho"
// @Success 201 {object} service.Receipt
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Checkout(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.CheckoutRequest
	if !bindJSON(ctx, &request) {
		return
	}

	in := request.ToInput()
	if in.BranchID == "" {
		in.BranchID = branch.GetBranchID(ctx.Request.Context())
	}

	receipt, err := c.checkout.Checkout(ctx.Request.Context(), tenantID, in)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, receipt)
}

// Get busca uma venda pelo ID
// @Summary Busca uma venda
// @Tags sales
// @Produce json
// @Security Bearer
// @Param id path string true "ID da venda"
// @Success 200 {object} sale.Sale
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	found, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, found)
}

// List lista as vendas
// @Summary Lista as vendas
// @Tags sales
// @Produce json
// @Security Bearer
// @Param client_id query string false "ID do cliente"
// @Param startDate query string false "Data inicial (AAAA-MM-DD)"
// @Param endDate query string false "Data final (AAAA-MM-DD)"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[sale.Sale]
// @Failure 400 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	from, to, err := periodOf(ctx, c.loc)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	p := paginationOf(ctx)

	sales, err := c.repo.List(ctx.Request.Context(), tenantID, sale.ListFilter{
		ClientID: ctx.Query("client_id"),
		From:     from,
		To:       to,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(slice(sales, p), len(sales), p))
}

// periodOf lê startDate e endDate da query; endDate inclui o dia inteiro
func periodOf(ctx *gin.Context, loc *time.Location) (*time.Time, *time.Time, error) {
	from, err := dto.ParseOptionalDate(ctx.Query("startDate"), loc)
	if err != nil {
		return nil, nil, shared.Validation("startDate", err.Error())
	}
	to, err := dto.ParseOptionalDate(ctx.Query("endDate"), loc)
	if err != nil {
		return nil, nil, shared.Validation("endDate", err.Error())
	}
	if to != nil && len(ctx.Query("endDate")) == len("2006-01-02") {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
