package transfer

import "context"

// Repository define as operações de persistência de transferências
type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	FindByID(ctx context.Context, tenantID, id string) (*Transfer, error)
	List(ctx context.Context, tenantID string, status Status) ([]*Transfer, error)
	Update(ctx context.Context, t *Transfer) error
	Delete(ctx context.Context, tenantID, id string) error
}
