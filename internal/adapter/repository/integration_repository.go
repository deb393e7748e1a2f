package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const integrationColumns = `id, tenant_id, provider, enabled, settings, last_sync_at, created_at, updated_at`

// PostgresIntegrationRepository implementa integration.Repository usando PostgreSQL
type PostgresIntegrationRepository struct {
	db database.PGXDB
}

// NewPostgresIntegrationRepository cria uma nova instância de PostgresIntegrationRepository
func NewPostgresIntegrationRepository(db database.PGXDB) *PostgresIntegrationRepository {
	return &PostgresIntegrationRepository{db: db}
}

// Create implementa integration.Repository.Create
func (r *PostgresIntegrationRepository) Create(ctx context.Context, i *integration.Integration) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO integrations (`+integrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, i.TenantID, i.Provider, i.Enabled, settingsArg(i), i.LastSyncAt, i.CreatedAt, i.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return integration.ErrDuplicateProvider
	}
	if err != nil {
		return dbError("inserir integração", err)
	}
	return nil
}

// FindByID implementa integration.Repository.FindByID
func (r *PostgresIntegrationRepository) FindByID(ctx context.Context, tenantID, id string) (*integration.Integration, error) {
	i, err := scanIntegration(r.db.QueryRow(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, integration.ErrIntegrationNotFound
	}
	if err != nil {
		return nil, dbError("buscar integração", err)
	}
	return i, nil
}

// List implementa integration.Repository.List
func (r *PostgresIntegrationRepository) List(ctx context.Context, tenantID string) ([]*integration.Integration, error) {
	return queryList(ctx, r.db, "listar integrações", scanIntegration,
		`SELECT `+integrationColumns+` FROM integrations WHERE tenant_id = $1 ORDER BY provider`, tenantID)
}

// Update implementa integration.Repository.Update
func (r *PostgresIntegrationRepository) Update(ctx context.Context, i *integration.Integration) error {
	return execAffecting(ctx, r.db, "atualizar integração", integration.ErrIntegrationNotFound, `
		UPDATE integrations SET enabled = $3, settings = $4, last_sync_at = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`,
		i.TenantID, i.ID, i.Enabled, settingsArg(i), i.LastSyncAt, i.UpdatedAt,
	)
}

// settingsArg envia as configurações como texto para a coluna JSONB
func settingsArg(i *integration.Integration) string {
	if len(i.Settings) == 0 {
		return "{}"
	}
	return string(i.Settings)
}

func scanIntegration(row rowScanner) (*integration.Integration, error) {
	i := &integration.Integration{}
	var settings []byte
	err := row.Scan(&i.ID, &i.TenantID, &i.Provider, &i.Enabled, &settings, &i.LastSyncAt, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.Settings = settings
	return i, nil
}
