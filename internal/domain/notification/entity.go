package notification

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrInvalidEmail      = shared.Validation("email", "email inválido")
	ErrMissingEmail      = shared.Validation("email", "informe o email para ativar notificações por email")
	ErrMissingChatID     = shared.Validation("telegram_chat_id", "informe o chat do Telegram para ativar notificações")
	ErrInvalidLeadTime   = shared.Validation("reminder_minutes_before", "antecedência deve estar entre 0 e 10080 minutos")
	ErrTelegramDisabled  = shared.BusinessRule("telegram_disabled", "notificações por Telegram estão desativadas")
	ErrSettingsNotFound  = shared.NotFound("configuração de notificação não encontrada")
	ErrDuplicateSettings = shared.Conflict("o tenant já possui configuração de notificação")
)

// DefaultReminderMinutes é a antecedência padrão dos lembretes
const DefaultReminderMinutes = 60

// Settings guarda as preferências de notificação de um tenant
type Settings struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID              string    `json:"tenant_id" gorm:"size:36;uniqueIndex"`
	EmailEnabled          bool      `json:"email_enabled"`
	Email                 string    `json:"email"`
	TelegramEnabled       bool      `json:"telegram_enabled"`
	TelegramChatID        string    `json:"telegram_chat_id"`
	WhatsAppEnabled       bool      `json:"whatsapp_enabled" gorm:"column:whatsapp_enabled"`
	ReminderMinutesBefore int       `json:"reminder_minutes_before"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName define a tabela usada pelo backend gorm
func (Settings) TableName() string { return "notification_settings" }

// NewSettings cria as preferências de um tenant
func NewSettings(tenantID string) *Settings {
	now := time.Now()
	return &Settings{
		ID:                    uuid.New().String(),
		TenantID:              tenantID,
		ReminderMinutesBefore: DefaultReminderMinutes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Apply valida e aplica as preferências informadas
func (s *Settings) Apply(emailEnabled bool, email string, telegramEnabled bool, chatID string, whatsappEnabled bool, minutesBefore int) error {
	email = strings.TrimSpace(email)
	chatID = strings.TrimSpace(chatID)

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return ErrInvalidEmail
		}
	}
	if emailEnabled && email == "" {
		return ErrMissingEmail
	}
	if telegramEnabled && chatID == "" {
		return ErrMissingChatID
	}
	if minutesBefore < 0 || minutesBefore > 7*24*60 {
		return ErrInvalidLeadTime
	}

	s.EmailEnabled = emailEnabled
	s.Email = email
	s.TelegramEnabled = telegramEnabled
	s.TelegramChatID = chatID
	s.WhatsAppEnabled = whatsappEnabled
	s.ReminderMinutesBefore = minutesBefore
	s.UpdatedAt = time.Now()
	return nil
}

// ReminderLead devolve a antecedência configurada
func (s *Settings) ReminderLead() time.Duration {
	return time.Duration(s.ReminderMinutesBefore) * time.Minute
}
