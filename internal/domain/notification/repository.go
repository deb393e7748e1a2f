package notification

import "context"

// Repository define as operações de persistência das preferências de notificação
type Repository interface {
	Create(ctx context.Context, s *Settings) error
	FindByID(ctx context.Context, tenantID, id string) (*Settings, error)

	// FindByTenant devolve a configuração do tenant ou ErrSettingsNotFound
	FindByTenant(ctx context.Context, tenantID string) (*Settings, error)

	List(ctx context.Context, tenantID string) ([]*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
