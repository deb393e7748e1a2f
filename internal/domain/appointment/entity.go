package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrEmptyTitle          = shared.Validation("title", "título não pode ser vazio")
	ErrEmptyClientName     = shared.Validation("client_name", "nome do cliente é obrigatório")
	ErrEmptyStartTime      = shared.Validation("start_time", "horário de início é obrigatório")
	ErrInvalidEndTime      = shared.Validation("end_time", "término deve ser posterior ao início")
	ErrInvalidStatus       = shared.Validation("status", "status de agendamento inválido")
	ErrAppointmentNotFound = shared.NotFound("agendamento não encontrado")
)

// ReminderLeadTime é a antecedência do lembrete em relação ao início
const ReminderLeadTime = 60 * time.Minute

// Status representa a situação do agendamento
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Valid verifica se o status é conhecido
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment representa um horário marcado na agenda
type Appointment struct {
	ID               string     `json:"id" gorm:"primaryKey;size:36"`
	TenantID         string     `json:"tenant_id" gorm:"size:36;index"`
	BusinessCategory string     `json:"business_category"`
	ClientID         string     `json:"client_id"`
	ClientName       string     `json:"client_name"`
	ClientPhone      string     `json:"client_phone"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Professional     string     `json:"professional"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	Status           Status     `json:"status"`
	ReminderAt       time.Time  `json:"reminder_at"`
	ReminderSentAt   *time.Time `json:"reminder_sent_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewAppointment cria um agendamento com lembrete uma hora antes do início
func NewAppointment(
	tenantID, businessCategory, clientID, clientName, title string,
	start, end time.Time,
) (*Appointment, error) {
	now := time.Now()
	a := &Appointment{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		BusinessCategory: businessCategory,
		ClientID:         clientID,
		ClientName:       strings.TrimSpace(clientName),
		Title:            strings.TrimSpace(title),
		StartTime:        start,
		EndTime:          end,
		Status:           StatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	a.ReminderAt = start.Add(-ReminderLeadTime)
	return a, nil
}

func (a *Appointment) validate() error {
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.ClientName == "" {
		return ErrEmptyClientName
	}
	if a.StartTime.IsZero() {
		return ErrEmptyStartTime
	}
	if !a.EndTime.IsZero() && !a.EndTime.After(a.StartTime) {
		return ErrInvalidEndTime
	}
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Reschedule altera os dados do agendamento. Mudar o início reagenda o lembrete.
func (a *Appointment) Reschedule(title, clientName, description string, start, end time.Time, status Status) error {
	updated := *a
	updated.Title = strings.TrimSpace(title)
	updated.ClientName = strings.TrimSpace(clientName)
	updated.Description = description
	updated.StartTime = start
	updated.EndTime = end
	if status != "" {
		updated.Status = status
	}
	if err := updated.validate(); err != nil {
		return err
	}
	if !start.Equal(a.StartTime) {
		updated.ReminderAt = start.Add(-ReminderLeadTime)
		updated.ReminderSentAt = nil
	}
	updated.UpdatedAt = time.Now()
	*a = updated
	return nil
}

// NeedsReminder indica se o lembrete já deve ser enviado em now
func (a *Appointment) NeedsReminder(now time.Time) bool {
	if a.ReminderSentAt != nil {
		return false
	}
	if a.Status != StatusScheduled && a.Status != StatusConfirmed {
		return false
	}
	return !now.Before(a.ReminderAt) && now.Before(a.StartTime)
}

// MarkReminderSent registra o envio do lembrete
func (a *Appointment) MarkReminderSent(at time.Time) {
	a.ReminderSentAt = &at
	a.UpdatedAt = at
}
