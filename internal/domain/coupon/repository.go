package coupon

import "context"

// Repository define as operações de persistência de cupons
type Repository interface {
	// Create persiste um novo cupom; código repetido no tenant retorna ErrDuplicateCode
	Create(ctx context.Context, c *Coupon) error

	// FindByID busca um cupom do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Coupon, error)

	// FindByCode busca pelo código canônico (maiúsculas)
	FindByCode(ctx context.Context, tenantID, code string) (*Coupon, error)

	// List lista os cupons do tenant
	List(ctx context.Context, tenantID string, onlyActive bool) ([]*Coupon, error)

	// Update grava as alterações de cadastro
	Update(ctx context.Context, c *Coupon) error

	// IncrementUsage contabiliza um uso se o cupom ainda estiver ativo e abaixo
	// do limite, desativando-o ao atingir o limite. Retorna ErrExhausted ou
	// ErrInactive quando a condição não é mais verdadeira.
	IncrementUsage(ctx context.Context, tenantID, id string) error
}
