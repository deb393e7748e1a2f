package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// IntegrationRequest representa a configuração de uma integração de agenda
type IntegrationRequest struct {
	Provider string          `json:"provider"`
	Enabled  bool            `json:"enabled"`
	Settings json.RawMessage `json:"settings" swaggertype:"object"`
}

// NotificationSettingsRequest representa as preferências de notificação do tenant
type NotificationSettingsRequest struct {
	EmailEnabled          bool   `json:"email_enabled"`
	Email                 string `json:"email"`
	TelegramEnabled       bool   `json:"telegram_enabled"`
	TelegramChatID        string `json:"telegram_chat_id"`
	WhatsAppEnabled       bool   `json:"whatsapp_enabled"`
	ReminderMinutesBefore *int   `json:"reminder_minutes_before"`
}

// TransferRequest representa uma transferência de mercadoria entre filiais
type TransferRequest struct {
	FromBranchID string          `json:"from_branch_id" binding:"required"`
	ToBranchID   string          `json:"to_branch_id" binding:"required"`
	ProductID    string          `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Notes        string          `json:"notes"`
}
