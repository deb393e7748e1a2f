package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// ListFilter restringe a listagem de produtos
type ListFilter struct {
	Category      string
	Search        string
	OnlyAvailable bool
	OnlyLowStock  bool
	Limit         int
	Offset        int
}

// Repository define as operações de persistência de produtos
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, tenantID, id string) (*Product, error)

	// FindByIDs busca vários produtos; IDs inexistentes ficam fora do mapa
	FindByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*Product, error)

	// LockByIDs é como FindByIDs, mas bloqueia as linhas até o fim da transação
	LockByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*Product, error)

	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error

	// UpdateStock grava apenas o estoque de um produto
	UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error

	Delete(ctx context.Context, tenantID, id string) error
}
