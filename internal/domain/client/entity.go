package client

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrEmptyName      = shared.Validation("name", "nome não pode ser vazio")
	ErrInvalidEmail   = shared.Validation("email", "email inválido")
	ErrClientNotFound = shared.NotFound("cliente não encontrado")
)

// Status representa o estado do cliente
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// Client representa um cliente do negócio (tutor do pet, paciente, comprador...)
type Client struct {
	ID               string            `json:"id" gorm:"primaryKey;size:36"`
	TenantID         string            `json:"tenant_id" gorm:"size:36;index"`
	BusinessCategory string            `json:"business_category"`
	Name             string            `json:"name"`
	Document         string            `json:"document"` // CPF/CNPJ
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	BirthDate        *time.Time        `json:"birth_date"`
	Notes            string            `json:"notes"`
	Attributes       map[string]string `json:"attributes" gorm:"serializer:json"` // Campos específicos da categoria (nome do pet, espécie...)
	Status           Status            `json:"status"`
	LastPurchaseAt   *time.Time        `json:"last_purchase_at"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewClient cria um novo cliente ativo
func NewClient(tenantID, businessCategory, name, phone, email string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Client{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		BusinessCategory: businessCategory,
		Name:             name,
		Phone:            strings.TrimSpace(phone),
		Email:            email,
		Attributes:       map[string]string{},
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Update atualiza os dados cadastrais do cliente
func (c *Client) Update(name, document, phone, email, notes string, birthDate *time.Time, attributes map[string]string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = name
	c.Document = strings.TrimSpace(document)
	c.Phone = strings.TrimSpace(phone)
	c.Email = email
	c.Notes = notes
	c.BirthDate = birthDate
	if attributes != nil {
		c.Attributes = attributes
	}
	c.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se o cliente está ativo
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// Activate ativa o cliente
func (c *Client) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate desativa o cliente
func (c *Client) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Block bloqueia o cliente
func (c *Client) Block() {
	c.Status = StatusBlocked
	c.UpdatedAt = time.Now()
}

// UpdateLastPurchase atualiza a data da última compra
func (c *Client) UpdateLastPurchase(at time.Time) {
	c.LastPurchaseAt = &at
	c.UpdatedAt = at
}

// InactiveSince indica se o cliente não compra há pelo menos days dias.
// Clientes que nunca compraram contam a partir do cadastro.
func (c *Client) InactiveSince(now time.Time, days int) bool {
	last := c.CreatedAt
	if c.LastPurchaseAt != nil {
		last = *c.LastPurchaseAt
	}
	return !now.Before(last.AddDate(0, 0, days))
}
