package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// CompanyController gerencia o cadastro das empresas (tenants)
type CompanyController struct {
	tenancy *service.TenancyService
	store   storage.Storage
	log     logger.Logger
}

// NewCompanyController cria uma nova instância de CompanyController
func NewCompanyController(tenancy *service.TenancyService, store storage.Storage, log logger.Logger) *CompanyController {
	return &CompanyController{tenancy: tenancy, store: store, log: log}
}

// Create cadastra uma empresa e sua matriz
// @Summary Cadastra uma empresa
// @Description Cria a empresa (tenant) junto com a filial matriz
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CompanyRequest true "Dados da empresa"
// @Success 201 {object} dto.SignUpResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /companies [post]
func (c *CompanyController) Create(ctx *gin.Context) {
	var request dto.CompanyRequest
	if !bindJSON(ctx, &request) {
		return
	}

	created, main, err := c.tenancy.RegisterCompany(ctx.Request.Context(), service.CompanyInput{
		Name:        request.Name,
		Document:    request.Document,
		Email:       request.Email,
		Phone:       request.Phone,
		Category:    company.Category(request.BusinessCategory),
		PlanType:    request.PlanType,
		MaxBranches: request.MaxBranches,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SignUpResponse{Company: created, MainBranch: dto.ToBranchResponse(main)})
}

// Current devolve a empresa do usuário autenticado
// @Summary Empresa atual
// @Tags companies
// @Produce json
// @Security Bearer
// @Success 200 {object} company.Company
// @Router /companies/current [get]
func (c *CompanyController) Current(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	found, err := c.store.Repositories().Companies.FindByID(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, found)
}

// UpdateCurrent altera os dados da empresa do usuário autenticado
// @Summary Atualiza a empresa atual
// @Tags companies
// @Accept json
// @Produce json
// @Security Bearer
// @Param company body dto.CompanyUpdateRequest true "Dados da empresa"
// @Success 200 {object} company.Company
// @Failure 400 {object} dto.ErrorResponse
// @Router /companies/current [put]
func (c *CompanyController) UpdateCurrent(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.CompanyUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	repos := c.store.Repositories()
	found, err := repos.Companies.FindByID(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	category := company.Category(request.BusinessCategory)
	if category == "" {
		category = found.BusinessCategory
	}
	if err := found.Update(request.Name, request.Email, request.Phone, category); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := repos.Companies.Update(ctx.Request.Context(), found); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, found)
}
