package integration

import "context"

// Repository define as operações de persistência de integrações
type Repository interface {
	Create(ctx context.Context, i *Integration) error
	FindByID(ctx context.Context, tenantID, id string) (*Integration, error)
	List(ctx context.Context, tenantID string) ([]*Integration, error)
	Update(ctx context.Context, i *Integration) error
}
