package messaging

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrEmptyBody        = shared.Validation("body", "mensagem não pode ser vazia")
	ErrEmptyClient      = shared.Validation("client_id", "cliente é obrigatório")
	ErrInvalidChannel   = shared.Validation("channel", "canal deve ser whatsapp, sms ou internal")
	ErrMissingRecipient = shared.Validation("phone", "cliente sem telefone cadastrado")
	ErrMessageNotFound  = shared.NotFound("mensagem não encontrada")
)

// Direction indica se a mensagem foi recebida ou enviada pelo negócio
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Channel é o meio de entrega da mensagem
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelInternal Channel = "internal" // anotação de atendimento, não é enviada
)

// Valid verifica se o canal é conhecido
func (c Channel) Valid() bool {
	return c == ChannelWhatsApp || c == ChannelSMS || c == ChannelInternal
}

// Status representa a situação de entrega
type Status string

const (
	StatusQueued   Status = "queued"
	StatusSent     Status = "sent"
	StatusFailed   Status = "failed"
	StatusReceived Status = "received"
)

// Message representa uma mensagem do histórico de atendimento de um cliente
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	TenantID   string    `json:"tenant_id" gorm:"size:36;index"`
	ClientID   string    `json:"client_id" gorm:"size:36;index"`
	UserID     string    `json:"user_id"`
	Direction  Direction `json:"direction"`
	Channel    Channel   `json:"channel"`
	Body       string    `json:"body"`
	Status     Status    `json:"status"`
	ExternalID string    `json:"external_id"`
	Error      string    `json:"error"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewOutbound cria uma mensagem a enviar para o cliente
func NewOutbound(tenantID, clientID, userID string, channel Channel, body string) (*Message, error) {
	m, err := newMessage(tenantID, clientID, channel, body)
	if err != nil {
		return nil, err
	}
	m.UserID = userID
	m.Direction = DirectionOutbound
	m.Status = StatusQueued
	if channel == ChannelInternal {
		m.Status = StatusSent
	}
	return m, nil
}

// NewInbound registra uma mensagem recebida do cliente
func NewInbound(tenantID, clientID string, channel Channel, body, externalID string) (*Message, error) {
	m, err := newMessage(tenantID, clientID, channel, body)
	if err != nil {
		return nil, err
	}
	m.Direction = DirectionInbound
	m.Status = StatusReceived
	m.ExternalID = externalID
	return m, nil
}

func newMessage(tenantID, clientID string, channel Channel, body string) (*Message, error) {
	if clientID == "" {
		return nil, ErrEmptyClient
	}
	if !channel.Valid() {
		return nil, ErrInvalidChannel
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	now := time.Now()
	return &Message{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ClientID:  clientID,
		Channel:   channel,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NeedsDelivery indica se a mensagem deve passar pelo provedor externo
func (m *Message) NeedsDelivery() bool {
	return m.Direction == DirectionOutbound && m.Channel != ChannelInternal && m.Status == StatusQueued
}

// MarkSent registra a aceitação pelo provedor
func (m *Message) MarkSent(externalID string) {
	m.Status = StatusSent
	m.ExternalID = externalID
	m.Error = ""
	m.UpdatedAt = time.Now()
}

// MarkFailed registra a falha de entrega
func (m *Message) MarkFailed(reason string) {
	m.Status = StatusFailed
	m.Error = reason
	m.UpdatedAt = time.Now()
}
