package messaging

import "context"

// Repository define as operações de persistência do histórico de atendimento
type Repository interface {
	// Save grava uma nova mensagem
	Save(ctx context.Context, m *Message) error

	// UpdateDelivery grava status, ID externo e erro de entrega
	UpdateDelivery(ctx context.Context, m *Message) error

	// ListByClient devolve o histórico do cliente, mais recentes primeiro
	ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*Message, error)

	// CountByClient conta as mensagens do cliente
	CountByClient(ctx context.Context, tenantID, clientID string) (int, error)
}
