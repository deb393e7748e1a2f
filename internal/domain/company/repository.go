package company

import "context"

// Repository define a interface para operações de repositório de empresas
type Repository interface {
	// Create cria uma nova empresa; documento repetido retorna ErrDuplicateCompany
	Create(ctx context.Context, c *Company) error

	// FindByID busca uma empresa pelo ID
	FindByID(ctx context.Context, id string) (*Company, error)

	// FindByDocument busca uma empresa pelo documento
	FindByDocument(ctx context.Context, document string) (*Company, error)

	// Update atualiza os dados de uma empresa existente
	Update(ctx context.Context, c *Company) error
}
