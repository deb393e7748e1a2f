package branch

import (
	"context"
)

// Repository define as operações de persistência para filiais
type Repository interface {
	// Create persiste uma nova filial
	Create(ctx context.Context, branch *Branch) error

	// FindByID busca uma filial do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Branch, error)

	// FindMainBranch busca a filial principal (matriz) de um tenant
	FindMainBranch(ctx context.Context, tenantID string) (*Branch, error)

	// Update atualiza uma filial existente
	Update(ctx context.Context, branch *Branch) error

	// Delete remove uma filial
	Delete(ctx context.Context, tenantID, id string) error

	// ListByTenant retorna as filiais de um tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*Branch, error)

	// CountByTenant retorna o número total de filiais de um tenant
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}
