package repository

import (
	"context"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const messageColumns = `id, tenant_id, client_id, user_id, direction, channel, body, status,
	external_id, error, created_at, updated_at`

// PostgresMessageRepository implementa messaging.Repository usando PostgreSQL
type PostgresMessageRepository struct {
	db database.PGXDB
}

// NewPostgresMessageRepository cria uma nova instância de PostgresMessageRepository
func NewPostgresMessageRepository(db database.PGXDB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Save implementa messaging.Repository.Save
func (r *PostgresMessageRepository) Save(ctx context.Context, m *messaging.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.TenantID, m.ClientID, m.UserID, m.Direction, m.Channel, m.Body, m.Status,
		m.ExternalID, m.Error, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return dbError("salvar mensagem", err)
	}
	return nil
}

// UpdateDelivery implementa messaging.Repository.UpdateDelivery
func (r *PostgresMessageRepository) UpdateDelivery(ctx context.Context, m *messaging.Message) error {
	return execAffecting(ctx, r.db, "atualizar entrega da mensagem", messaging.ErrMessageNotFound, `
		UPDATE messages SET status = $3, external_id = $4, error = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`,
		m.TenantID, m.ID, m.Status, m.ExternalID, m.Error, m.UpdatedAt,
	)
}

// ListByClient implementa messaging.Repository.ListByClient
func (r *PostgresMessageRepository) ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*messaging.Message, error) {
	query, args := limitOffset(
		`SELECT `+messageColumns+` FROM messages WHERE tenant_id = $1 AND client_id = $2 ORDER BY created_at DESC`,
		[]any{tenantID, clientID}, limit, offset)
	return queryList(ctx, r.db, "listar mensagens", scanMessage, query, args...)
}

// CountByClient implementa messaging.Repository.CountByClient
func (r *PostgresMessageRepository) CountByClient(ctx context.Context, tenantID, clientID string) (int, error) {
	return countRows(ctx, r.db, "contar mensagens",
		`SELECT COUNT(*) FROM messages WHERE tenant_id = $1 AND client_id = $2`, tenantID, clientID)
}

func scanMessage(row rowScanner) (*messaging.Message, error) {
	m := &messaging.Message{}
	err := row.Scan(
		&m.ID, &m.TenantID, &m.ClientID, &m.UserID, &m.Direction, &m.Channel, &m.Body, &m.Status,
		&m.ExternalID, &m.Error, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
