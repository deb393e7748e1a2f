package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// TransferController gerencia as transferências de mercadoria entre filiais
type TransferController struct {
	inventory *service.InventoryService
	repo      transfer.Repository
	log       logger.Logger
}

// NewTransferController cria uma nova instância de TransferController
func NewTransferController(inventory *service.InventoryService, store storage.Storage, log logger.Logger) *TransferController {
	return &TransferController{inventory: inventory, repo: store.Repositories().Transfers, log: log}
}

// Create registra uma transferência
// @Summary Cria uma transferência
// @Tags transfers
// @Accept json
// @Produce json
// @Security Bearer
// @Param transfer body dto.TransferRequest true "Transferência"
// @Success 201 {object} transfer.Transfer
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /transfers [post]
func (c *TransferController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.TransferRequest
	if !bindJSON(ctx, &request) {
		return
	}

	t, err := c.inventory.CreateTransfer(ctx.Request.Context(), tenantID,
		request.FromBranchID, request.ToBranchID, request.ProductID, request.Quantity, request.Notes)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, t)
}

// Get busca uma transferência pelo ID
// @Summary Busca uma transferência
// @Tags transfers
// @Produce json
// @Security Bearer
// @Param id path string true "ID da transferência"
// @Success 200 {object} transfer.Transfer
// @Failure 404 {object} dto.ErrorResponse
// @Router /transfers/{id} [get]
func (c *TransferController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	t, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, t)
}

// List lista as transferências
// @Summary Lista as transferências
// @Tags transfers
// @Produce json
// @Security Bearer
// @Param status query string false "pending, completed ou cancelled"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[transfer.Transfer]
// @Router /transfers [get]
func (c *TransferController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)

	transfers, err := c.repo.List(ctx.Request.Context(), tenantID, transfer.Status(ctx.Query("status")))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(slice(transfers, p), len(transfers), p))
}

// Complete conclui uma transferência pendente
// @Summary Conclui uma transferência
// @Tags transfers
// @Produce json
// @Security Bearer
// @Param id path string true "ID da transferência"
// @Success 200 {object} transfer.Transfer
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /transfers/{id}/complete [post]
func (c *TransferController) Complete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	t, err := c.inventory.CompleteTransfer(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, t)
}

// Cancel cancela uma transferência pendente
// @Summary Cancela uma transferência
// @Tags transfers
// @Produce json
// @Security Bearer
// @Param id path string true "ID da transferência"
// @Success 200 {object} transfer.Transfer
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /transfers/{id}/cancel [post]
func (c *TransferController) Cancel(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	t, err := c.inventory.CancelTransfer(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, t)
}
