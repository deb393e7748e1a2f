package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*User, error)

	// FindByEmail busca um usuário pelo email dentro de um tenant
	FindByEmail(ctx context.Context, tenantID, email string) (*User, error)

	// List lista os usuários de um tenant
	List(ctx context.Context, tenantID string) ([]*User, error)

	// Update atualiza os dados de um usuário existente, inclusive senha e último login
	Update(ctx context.Context, u *User) error

	// Delete remove um usuário do sistema
	Delete(ctx context.Context, tenantID, id string) error

	// CountByTenant conta quantos usuários existem para um tenant
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}
