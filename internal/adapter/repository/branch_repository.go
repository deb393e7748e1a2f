package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const branchColumns = `id, tenant_id, name, code, type, document, address, phone, email, status, is_main, created_at, updated_at`

// PostgresBranchRepository implementa a interface branch.Repository usando PostgreSQL
type PostgresBranchRepository struct {
	db database.PGXDB
}

// NewPostgresBranchRepository cria uma nova instância de PostgresBranchRepository
func NewPostgresBranchRepository(db database.PGXDB) *PostgresBranchRepository {
	return &PostgresBranchRepository{db: db}
}

// Create implementa branch.Repository.Create
func (r *PostgresBranchRepository) Create(ctx context.Context, b *branch.Branch) error {
	address, err := toJSON(b.Address, "{}")
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO branches (`+branchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.TenantID, b.Name, b.Code, b.Type, b.Document, address,
		b.Phone, b.Email, b.Status, b.IsMain, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir filial", err)
	}
	return nil
}

// FindByID implementa branch.Repository.FindByID
func (r *PostgresBranchRepository) FindByID(ctx context.Context, tenantID, id string) (*branch.Branch, error) {
	return r.findOne(ctx, `SELECT `+branchColumns+` FROM branches WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindMainBranch implementa branch.Repository.FindMainBranch
func (r *PostgresBranchRepository) FindMainBranch(ctx context.Context, tenantID string) (*branch.Branch, error) {
	return r.findOne(ctx, `SELECT `+branchColumns+` FROM branches WHERE tenant_id = $1 AND is_main = true`, tenantID)
}

// Update implementa branch.Repository.Update
func (r *PostgresBranchRepository) Update(ctx context.Context, b *branch.Branch) error {
	address, err := toJSON(b.Address, "{}")
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, "atualizar filial", branch.ErrBranchNotFound, `
		UPDATE branches SET
			name = $3, code = $4, type = $5, document = $6, address = $7,
			phone = $8, email = $9, status = $10, is_main = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2`,
		b.TenantID, b.ID, b.Name, b.Code, b.Type, b.Document, address,
		b.Phone, b.Email, b.Status, b.IsMain, b.UpdatedAt,
	)
}

// Delete implementa branch.Repository.Delete
func (r *PostgresBranchRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir filial", branch.ErrBranchNotFound,
		`DELETE FROM branches WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// ListByTenant implementa branch.Repository.ListByTenant
func (r *PostgresBranchRepository) ListByTenant(ctx context.Context, tenantID string) ([]*branch.Branch, error) {
	return queryList(ctx, r.db, "listar filiais", scanBranch,
		`SELECT `+branchColumns+` FROM branches WHERE tenant_id = $1 ORDER BY is_main DESC, name`, tenantID)
}

// CountByTenant implementa branch.Repository.CountByTenant
func (r *PostgresBranchRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	return countRows(ctx, r.db, "contar filiais", `SELECT COUNT(*) FROM branches WHERE tenant_id = $1`, tenantID)
}

func (r *PostgresBranchRepository) findOne(ctx context.Context, query string, args ...any) (*branch.Branch, error) {
	b, err := scanBranch(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, branch.ErrBranchNotFound
	}
	if err != nil {
		return nil, dbError("buscar filial", err)
	}
	return b, nil
}

func scanBranch(row rowScanner) (*branch.Branch, error) {
	b := &branch.Branch{}
	err := row.Scan(
		&b.ID, &b.TenantID, &b.Name, &b.Code, &b.Type, &b.Document, &b.Address,
		&b.Phone, &b.Email, &b.Status, &b.IsMain, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
