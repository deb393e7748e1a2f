package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const transferColumns = `id, tenant_id, from_branch_id, to_branch_id, product_id, product_name, quantity,
	status, notes, completed_at, created_at, updated_at`

// PostgresTransferRepository implementa transfer.Repository usando PostgreSQL
type PostgresTransferRepository struct {
	db database.PGXDB
}

// NewPostgresTransferRepository cria uma nova instância de PostgresTransferRepository
func NewPostgresTransferRepository(db database.PGXDB) *PostgresTransferRepository {
	return &PostgresTransferRepository{db: db}
}

// Create implementa transfer.Repository.Create
func (r *PostgresTransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.TenantID, t.FromBranchID, t.ToBranchID, t.ProductID, t.ProductName, t.Quantity,
		t.Status, t.Notes, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir transferência", err)
	}
	return nil
}

// FindByID implementa transfer.Repository.FindByID
func (r *PostgresTransferRepository) FindByID(ctx context.Context, tenantID, id string) (*transfer.Transfer, error) {
	t, err := scanTransfer(r.db.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, transfer.ErrTransferNotFound
	}
	if err != nil {
		return nil, dbError("buscar transferência", err)
	}
	return t, nil
}

// List implementa transfer.Repository.List
func (r *PostgresTransferRepository) List(ctx context.Context, tenantID string, status transfer.Status) ([]*transfer.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	return queryList(ctx, r.db, "listar transferências", scanTransfer, query+` ORDER BY created_at DESC`, args...)
}

// Update implementa transfer.Repository.Update
func (r *PostgresTransferRepository) Update(ctx context.Context, t *transfer.Transfer) error {
	return execAffecting(ctx, r.db, "atualizar transferência", transfer.ErrTransferNotFound, `
		UPDATE transfers SET
			quantity = $3, status = $4, notes = $5, completed_at = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		t.TenantID, t.ID, t.Quantity, t.Status, t.Notes, t.CompletedAt, t.UpdatedAt,
	)
}

// Delete implementa transfer.Repository.Delete
func (r *PostgresTransferRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir transferência", transfer.ErrTransferNotFound,
		`DELETE FROM transfers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanTransfer(row rowScanner) (*transfer.Transfer, error) {
	t := &transfer.Transfer{}
	err := row.Scan(
		&t.ID, &t.TenantID, &t.FromBranchID, &t.ToBranchID, &t.ProductID, &t.ProductName, &t.Quantity,
		&t.Status, &t.Notes, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
