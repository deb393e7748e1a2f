package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// BranchController gerencia as requisições relacionadas a filiais
type BranchController struct {
	tenancy *service.TenancyService
	repo    branch.Repository
	log     logger.Logger
}

// NewBranchController cria uma nova instância de BranchController
func NewBranchController(tenancy *service.TenancyService, store storage.Storage, log logger.Logger) *BranchController {
	return &BranchController{tenancy: tenancy, repo: store.Repositories().Branches, log: log}
}

// Create cria uma nova filial
// @Summary Cria uma nova filial
// @Description Cria uma filial respeitando o limite do plano da empresa
// @Tags branches
// @Accept json
// @Produce json
// @Security Bearer
// @Param branch body dto.BranchRequest true "Dados da filial"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /branches [post]
func (c *BranchController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.BranchRequest
	if !bindJSON(ctx, &request) {
		return
	}

	b, err := c.tenancy.CreateBranch(ctx.Request.Context(), tenantID, service.BranchInput{
		Name:     request.Name,
		Code:     request.Code,
		Type:     branch.BranchType(request.Type),
		Document: request.Document,
		Address:  request.Address.ToAddress(),
		Phone:    request.Phone,
		Email:    request.Email,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBranchResponse(b))
}

// Get busca uma filial pelo ID
// @Summary Busca uma filial
// @Tags branches
// @Produce json
// @Security Bearer
// @Param id path string true "ID da filial"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /branches/{id} [get]
func (c *BranchController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	b, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToBranchResponse(b))
}

// List lista as filiais da empresa
// @Summary Lista as filiais
// @Tags branches
// @Produce json
// @Security Bearer
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.BranchResponse]
// @Router /branches [get]
func (c *BranchController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)

	branches, err := c.repo.ListByTenant(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToBranchResponses(slice(branches, p)), len(branches), p))
}

// Update atualiza os dados de uma filial
// @Summary Atualiza uma filial
// @Tags branches
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da filial"
// @Param branch body dto.BranchRequest true "Dados da filial"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /branches/{id} [put]
func (c *BranchController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.BranchRequest
	if !bindJSON(ctx, &request) {
		return
	}

	b, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := b.Update(request.Name, request.Code, request.Phone, request.Email, request.Address.ToAddress()); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Update(ctx.Request.Context(), b); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToBranchResponse(b))
}

// Delete exclui uma filial
// @Summary Exclui uma filial
// @Description A matriz não pode ser excluída
// @Tags branches
// @Security Bearer
// @Param id path string true "ID da filial"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /branches/{id} [delete]
func (c *BranchController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.tenancy.DeleteBranch(ctx.Request.Context(), tenantID, ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
