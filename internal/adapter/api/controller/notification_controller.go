package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// NotificationController gerencia as preferências de notificação da empresa
type NotificationController struct {
	notifications *service.NotificationService
	repo          notification.Repository
	log           logger.Logger
}

// NewNotificationController cria uma nova instância de NotificationController
func NewNotificationController(notifications *service.NotificationService, store storage.Storage, log logger.Logger) *NotificationController {
	return &NotificationController{notifications: notifications, repo: store.Repositories().NotificationSettings, log: log}
}

func applySettings(s *notification.Settings, request dto.NotificationSettingsRequest) error {
	minutes := s.ReminderMinutesBefore
	if request.ReminderMinutesBefore != nil {
		minutes = *request.ReminderMinutesBefore
	}
	return s.Apply(request.EmailEnabled, request.Email, request.TelegramEnabled,
		request.TelegramChatID, request.WhatsAppEnabled, minutes)
}

// List devolve as preferências da empresa
// @Summary Lista as preferências de notificação
// @Tags notification-settings
// @Produce json
// @Security Bearer
// @Success 200 {array} notification.Settings
// @Router /notification-settings [get]
func (c *NotificationController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	settings, err := c.repo.List(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if settings == nil {
		settings = []*notification.Settings{}
	}
	ctx.JSON(http.StatusOK, settings)
}

// Create grava as preferências da empresa
// @Summary Cria as preferências de notificação
// @Description Uma configuração por empresa; antecedência padrão de 60 minutos
// @Tags notification-settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param settings body dto.NotificationSettingsRequest true "Preferências"
// @Success 201 {object} notification.Settings
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /notification-settings [post]
func (c *NotificationController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.NotificationSettingsRequest
	if !bindJSON(ctx, &request) {
		return
	}

	s := notification.NewSettings(tenantID)
	if err := applySettings(s, request); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Create(ctx.Request.Context(), s); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, s)
}

// Update altera as preferências
// @Summary Atualiza as preferências de notificação
// @Tags notification-settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da configuração"
// @Param settings body dto.NotificationSettingsRequest true "Preferências"
// @Success 200 {object} notification.Settings
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notification-settings/{id} [put]
func (c *NotificationController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.NotificationSettingsRequest
	if !bindJSON(ctx, &request) {
		return
	}

	s, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := applySettings(s, request); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Update(ctx.Request.Context(), s); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// Test envia uma mensagem de teste pelo Telegram
// @Summary Testa a notificação
// @Tags notification-settings
// @Produce json
// @Security Bearer
// @Param id path string true "ID da configuração"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /notification-settings/{id}/test [post]
func (c *NotificationController) Test(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	s, err := c.notifications.SendTest(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Notificação de teste enviada", s))
}
