package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// ClientController gerencia clientes e o histórico de atendimento
type ClientController struct {
	repo      client.Repository
	messaging *service.MessagingService
	loc       *time.Location
	log       logger.Logger
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(store storage.Storage, messaging *service.MessagingService, loc *time.Location, log logger.Logger) *ClientController {
	return &ClientController{repo: store.Repositories().Clients, messaging: messaging, loc: loc, log: log}
}

// Create cadastra um cliente
// @Summary Cadastra um cliente
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} client.Client
// @Failure 400 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.ClientRequest
	if !bindJSON(ctx, &request) {
		return
	}
	birthDate, err := dto.ParseOptionalDate(request.BirthDate, c.loc)
	if err != nil {
		respondError(ctx, c.log, shared.Validation("birth_date", err.Error()))
		return
	}

	created, err := client.NewClient(tenantID, request.BusinessCategory, request.Name, request.Phone, request.Email)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := created.Update(request.Name, request.Document, request.Phone, request.Email, request.Notes, birthDate, request.Attributes); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Create(ctx.Request.Context(), created); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// Get busca um cliente pelo ID
// @Summary Busca um cliente
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Success 200 {object} client.Client
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
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

// List lista os clientes
// @Summary Lista os clientes
// @Tags clients
// @Produce json
// @Security Bearer
// @Param search query string false "Trecho do nome, telefone ou email"
// @Param status query string false "Status do cliente"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[client.Client]
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)
	filter := client.ListFilter{
		Search: ctx.Query("search"),
		Status: client.Status(ctx.Query("status")),
	}

	total, err := c.repo.Count(ctx.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	filter.Limit, filter.Offset = p.PageSize, p.Offset()
	clients, err := c.repo.List(ctx.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(clients, total, p))
}

// Update atualiza um cliente
// @Summary Atualiza um cliente
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 200 {object} client.Client
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.ClientRequest
	if !bindJSON(ctx, &request) {
		return
	}

	found, err := c.update(ctx.Request.Context(), tenantID, ctx.Param("id"), request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, found)
}

func (c *ClientController) update(ctx context.Context, tenantID, id string, request dto.ClientRequest) (*client.Client, error) {
	birthDate, err := dto.ParseOptionalDate(request.BirthDate, c.loc)
	if err != nil {
		return nil, shared.Validation("birth_date", err.Error())
	}
	found, err := c.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := found.Update(request.Name, request.Document, request.Phone, request.Email, request.Notes, birthDate, request.Attributes); err != nil {
		return nil, err
	}
	if err := c.repo.Update(ctx, found); err != nil {
		return nil, err
	}
	return found, nil
}

// Delete exclui um cliente
// @Summary Exclui um cliente
// @Tags clients
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.repo.Delete(ctx.Request.Context(), tenantID, ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Messages lista o histórico de atendimento do cliente
// @Summary Histórico de mensagens
// @Description Mensagens trocadas com o cliente, mais recentes primeiro
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[messaging.Message]
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id}/messages [get]
func (c *ClientController) Messages(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)

	messages, total, err := c.messaging.History(ctx.Request.Context(), tenantID, ctx.Param("id"), p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(messages, total, p))
}

// SendMessage envia uma mensagem ao cliente
// @Summary Envia mensagem ao cliente
// @Description Canais whatsapp e sms passam pelo provedor; a falha de entrega fica registrada na mensagem
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Param message body dto.MessageRequest true "Mensagem"
// @Success 201 {object} messaging.Message
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id}/messages [post]
func (c *ClientController) SendMessage(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.MessageRequest
	if !bindJSON(ctx, &request) {
		return
	}

	current := auth.GetCurrentUser(ctx)
	m, err := c.messaging.Send(ctx.Request.Context(), tenantID, current.ID, ctx.Param("id"),
		messaging.Channel(request.Channel), request.Body)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, m)
}

// ReceiveMessage registra uma mensagem recebida do cliente
// @Summary Registra mensagem recebida
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cliente"
// @Param message body dto.InboundMessageRequest true "Mensagem recebida"
// @Success 201 {object} messaging.Message
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id}/messages/inbound [post]
func (c *ClientController) ReceiveMessage(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.InboundMessageRequest
	if !bindJSON(ctx, &request) {
		return
	}

	m, err := c.messaging.Receive(ctx.Request.Context(), tenantID, ctx.Param("id"),
		messaging.Channel(request.Channel), request.Body, request.ExternalID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, m)
}
