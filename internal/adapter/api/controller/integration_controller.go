package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// IntegrationController gerencia as integrações de agenda (Google, Outlook, Doctoralia)
type IntegrationController struct {
	repo integration.Repository
	log  logger.Logger
}

// NewIntegrationController cria uma nova instância de IntegrationController
func NewIntegrationController(store storage.Storage, log logger.Logger) *IntegrationController {
	return &IntegrationController{repo: store.Repositories().Integrations, log: log}
}

// List lista as integrações da empresa
// @Summary Lista as integrações
// @Tags integrations
// @Produce json
// @Security Bearer
// @Success 200 {array} integration.Integration
// @Router /integrations [get]
func (c *IntegrationController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	integrations, err := c.repo.List(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if integrations == nil {
		integrations = []*integration.Integration{}
	}
	ctx.JSON(http.StatusOK, integrations)
}

// Create configura um provedor
// @Summary Cria uma integração
// @Description As configurações são repassadas sem interpretação; um registro por provedor
// @Tags integrations
// @Accept json
// @Produce json
// @Security Bearer
// @Param integration body dto.IntegrationRequest true "Configuração"
// @Success 201 {object} integration.Integration
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /integrations [post]
func (c *IntegrationController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.IntegrationRequest
	if !bindJSON(ctx, &request) {
		return
	}

	i, err := integration.NewIntegration(tenantID, integration.Provider(request.Provider), request.Enabled, request.Settings)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Create(ctx.Request.Context(), i); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, i)
}

// Update altera uma integração
// @Summary Atualiza uma integração
// @Description O provedor não muda; apenas estado e configurações
// @Tags integrations
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da integração"
// @Param integration body dto.IntegrationRequest true "Configuração"
// @Success 200 {object} integration.Integration
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /integrations/{id} [put]
func (c *IntegrationController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.IntegrationRequest
	if !bindJSON(ctx, &request) {
		return
	}

	i, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := i.Update(request.Enabled, request.Settings); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Update(ctx.Request.Context(), i); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, i)
}
