package sale

import (
	"context"
	"time"
)

// ListFilter restringe a listagem de vendas
type ListFilter struct {
	ClientID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// Repository define as operações de persistência de vendas
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	FindByID(ctx context.Context, tenantID, id string) (*Sale, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Sale, error)
	Delete(ctx context.Context, tenantID, id string) error
}
