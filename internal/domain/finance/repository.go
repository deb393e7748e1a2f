package finance

import (
	"context"
	"time"
)

// ListFilter restringe a listagem de lançamentos
type ListFilter struct {
	Kind    Kind
	DueFrom *time.Time
	DueTo   *time.Time
	Limit   int
	Offset  int
}

// Repository define as operações de persistência de lançamentos financeiros
type Repository interface {
	// Create persiste um novo lançamento
	Create(ctx context.Context, e *Entry) error

	// FindByID busca um lançamento do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Entry, error)

	// List lista os lançamentos do tenant ordenados pelo vencimento
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Entry, error)

	// Update grava as alterações de um lançamento existente
	Update(ctx context.Context, e *Entry) error

	// Delete remove definitivamente um lançamento
	Delete(ctx context.Context, tenantID, id string) error
}
