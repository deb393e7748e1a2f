package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// AppointmentController gerencia a agenda e o disparo de lembretes
type AppointmentController struct {
	store     storage.Storage
	reminders *service.ReminderService
	loc       *time.Location
	log       logger.Logger
}

// NewAppointmentController cria uma nova instância de AppointmentController
func NewAppointmentController(store storage.Storage, reminders *service.ReminderService, loc *time.Location, log logger.Logger) *AppointmentController {
	return &AppointmentController{store: store, reminders: reminders, loc: loc, log: log}
}

type schedule struct {
	start, end time.Time
}

func (c *AppointmentController) scheduleOf(request dto.AppointmentRequest) (schedule, error) {
	var s schedule
	if strings.TrimSpace(request.StartTime) != "" {
		start, err := dto.ParseDate(request.StartTime, c.loc)
		if err != nil {
			return s, shared.Validation("start_time", err.Error())
		}
		s.start = start
	}
	if strings.TrimSpace(request.EndTime) != "" {
		end, err := dto.ParseDate(request.EndTime, c.loc)
		if err != nil {
			return s, shared.Validation("end_time", err.Error())
		}
		s.end = end
	}
	return s, nil
}

// fillClient completa nome e telefone com o cadastro do cliente vinculado
func (c *AppointmentController) fillClient(ctx context.Context, tenantID string, request *dto.AppointmentRequest) error {
	if request.ClientID == "" {
		return nil
	}
	cl, err := c.store.Repositories().Clients.FindByID(ctx, tenantID, request.ClientID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(request.ClientName) == "" {
		request.ClientName = cl.Name
	}
	if strings.TrimSpace(request.ClientPhone) == "" {
		request.ClientPhone = cl.Phone
	}
	return nil
}

func (c *AppointmentController) create(ctx context.Context, tenantID string, request dto.AppointmentRequest) (*appointment.Appointment, error) {
	s, err := c.scheduleOf(request)
	if err != nil {
		return nil, err
	}
	if err := c.fillClient(ctx, tenantID, &request); err != nil {
		return nil, err
	}
	a, err := appointment.NewAppointment(tenantID, request.BusinessCategory, request.ClientID,
		request.ClientName, request.Title, s.start, s.end)
	if err != nil {
		return nil, err
	}
	if request.Status != "" || request.Description != "" {
		if err := a.Reschedule(a.Title, a.ClientName, request.Description, a.StartTime, a.EndTime, appointment.Status(request.Status)); err != nil {
			return nil, err
		}
	}
	a.ClientPhone = strings.TrimSpace(request.ClientPhone)
	a.Professional = strings.TrimSpace(request.Professional)
	if err := c.store.Repositories().Appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *AppointmentController) update(ctx context.Context, tenantID, id string, request dto.AppointmentRequest) (*appointment.Appointment, error) {
	s, err := c.scheduleOf(request)
	if err != nil {
		return nil, err
	}
	if err := c.fillClient(ctx, tenantID, &request); err != nil {
		return nil, err
	}
	repo := c.store.Repositories().Appointments
	a, err := repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := a.Reschedule(request.Title, request.ClientName, request.Description, s.start, s.end, appointment.Status(request.Status)); err != nil {
		return nil, err
	}
	a.ClientID = request.ClientID
	a.ClientPhone = strings.TrimSpace(request.ClientPhone)
	a.Professional = strings.TrimSpace(request.Professional)
	if request.BusinessCategory != "" {
		a.BusinessCategory = request.BusinessCategory
	}
	if err := repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Create agenda um horário
// @Summary Cria um agendamento
// @Description O lembrete é programado para uma hora antes do início
// @Tags appointments
// @Accept json
// @Produce json
// @Security Bearer
// @Param appointment body dto.AppointmentRequest true "Dados do agendamento"
// @Success 201 {object} appointment.Appointment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments [post]
func (c *AppointmentController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.AppointmentRequest
	if !bindJSON(ctx, &request) {
		return
	}

	a, err := c.create(ctx.Request.Context(), tenantID, request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, a)
}

// Get busca um agendamento pelo ID
// @Summary Busca um agendamento
// @Tags appointments
// @Produce json
// @Security Bearer
// @Param id path string true "ID do agendamento"
// @Success 200 {object} appointment.Appointment
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments/{id} [get]
func (c *AppointmentController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	a, err := c.store.Repositories().Appointments.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// List lista os agendamentos do período
// @Summary Lista os agendamentos
// @Tags appointments
// @Produce json
// @Security Bearer
// @Param startDate query string false "Início a partir de (AAAA-MM-DD)"
// @Param endDate query string false "Início até (AAAA-MM-DD)"
// @Success 200 {array} appointment.Appointment
// @Failure 400 {object} dto.ErrorResponse
// @Router /appointments [get]
func (c *AppointmentController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	from, to, err := periodOf(ctx, c.loc)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	appointments, err := c.store.Repositories().Appointments.List(ctx.Request.Context(), tenantID, from, to)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if appointments == nil {
		appointments = []*appointment.Appointment{}
	}
	ctx.JSON(http.StatusOK, appointments)
}

// Update altera um agendamento
// @Summary Atualiza um agendamento
// @Description Mudar o início reprograma o lembrete
// @Tags appointments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do agendamento"
// @Param appointment body dto.AppointmentRequest true "Dados do agendamento"
// @Success 200 {object} appointment.Appointment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments/{id} [put]
func (c *AppointmentController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.AppointmentRequest
	if !bindJSON(ctx, &request) {
		return
	}

	a, err := c.update(ctx.Request.Context(), tenantID, ctx.Param("id"), request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// Delete exclui um agendamento
// @Summary Exclui um agendamento
// @Tags appointments
// @Security Bearer
// @Param id path string true "ID do agendamento"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /appointments/{id} [delete]
func (c *AppointmentController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.store.Repositories().Appointments.Delete(ctx.Request.Context(), tenantID, ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DueReminders lista os lembretes vencidos e ainda não enviados
// @Summary Lembretes pendentes
// @Tags appointments
// @Produce json
// @Security Bearer
// @Success 200 {array} appointment.Appointment
// @Router /appointments/reminders/due [get]
func (c *AppointmentController) DueReminders(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	due, err := c.reminders.Due(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if due == nil {
		due = []*appointment.Appointment{}
	}
	ctx.JSON(http.StatusOK, due)
}

// DispatchReminders envia agora os lembretes pendentes
// @Summary Dispara os lembretes
// @Description Envia pelos canais ativos nas preferências de notificação; não há envio automático
// @Tags appointments
// @Produce json
// @Security Bearer
// @Success 200 {object} service.DispatchReport
// @Router /appointments/reminders/dispatch [post]
func (c *AppointmentController) DispatchReminders(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	report, err := c.reminders.Dispatch(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}
