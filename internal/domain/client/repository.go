package client

import "context"

// ListFilter restringe a listagem de clientes
type ListFilter struct {
	Search string // trecho do nome, telefone ou email
	Status Status
	Limit  int
	Offset int
}

// Repository define as operações de persistência de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Client) error

	// FindByID busca um cliente do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Client, error)

	// List lista os clientes do tenant com paginação
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Client, error)

	// Count conta os clientes do tenant que atendem ao filtro
	Count(ctx context.Context, tenantID string, filter ListFilter) (int, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Client) error

	// Delete remove um cliente
	Delete(ctx context.Context, tenantID, id string) error
}
