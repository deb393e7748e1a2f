package integration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrInvalidProvider     = shared.Validation("provider", "provedor deve ser google, outlook ou doctoralia")
	ErrInvalidSettings     = shared.Validation("settings", "configurações devem ser um objeto JSON")
	ErrIntegrationNotFound = shared.NotFound("integração não encontrada")
	ErrDuplicateProvider   = shared.Conflict("integração com este provedor já existe")
)

// Provider identifica o calendário externo
type Provider string

const (
	ProviderGoogle     Provider = "google"
	ProviderOutlook    Provider = "outlook"
	ProviderDoctoralia Provider = "doctoralia"
)

// Valid verifica se o provedor é suportado
func (p Provider) Valid() bool {
	return p == ProviderGoogle || p == ProviderOutlook || p == ProviderDoctoralia
}

// Integration guarda as configurações de sincronização de agenda de um provedor.
// Settings é repassado sem interpretação.
type Integration struct {
	ID         string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID   string          `json:"tenant_id" gorm:"size:36;uniqueIndex:idx_integrations_tenant_provider"`
	Provider   Provider        `json:"provider" gorm:"uniqueIndex:idx_integrations_tenant_provider"`
	Enabled    bool            `json:"enabled"`
	Settings   json.RawMessage `json:"settings"`
	LastSyncAt *time.Time      `json:"last_sync_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewIntegration cria a configuração de um provedor
func NewIntegration(tenantID string, provider Provider, enabled bool, settings json.RawMessage) (*Integration, error) {
	if !provider.Valid() {
		return nil, ErrInvalidProvider
	}
	settings, err := normalizeSettings(settings)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Integration{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Provider:  provider,
		Enabled:   enabled,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update substitui o estado e as configurações
func (i *Integration) Update(enabled bool, settings json.RawMessage) error {
	settings, err := normalizeSettings(settings)
	if err != nil {
		return err
	}
	i.Enabled = enabled
	i.Settings = settings
	i.UpdatedAt = time.Now()
	return nil
}

func normalizeSettings(settings json.RawMessage) (json.RawMessage, error) {
	if len(settings) == 0 || string(settings) == "null" {
		return json.RawMessage("{}"), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(settings, &obj); err != nil {
		return nil, ErrInvalidSettings
	}
	return settings, nil
}
