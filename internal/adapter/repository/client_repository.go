package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const clientColumns = `id, tenant_id, business_category, name, document, email, phone, birth_date,
	notes, attributes, status, last_purchase_at, created_at, updated_at`

// PostgresClientRepository implementa client.Repository usando PostgreSQL
type PostgresClientRepository struct {
	db database.PGXDB
}

// NewPostgresClientRepository cria uma nova instância de PostgresClientRepository
func NewPostgresClientRepository(db database.PGXDB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

// Create implementa client.Repository.Create
func (r *PostgresClientRepository) Create(ctx context.Context, c *client.Client) error {
	attrs, err := toJSON(c.Attributes, "{}")
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.TenantID, c.BusinessCategory, c.Name, c.Document, c.Email, c.Phone, c.BirthDate,
		c.Notes, attrs, c.Status, c.LastPurchaseAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir cliente", err)
	}
	return nil
}

// FindByID implementa client.Repository.FindByID
func (r *PostgresClientRepository) FindByID(ctx context.Context, tenantID, id string) (*client.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, client.ErrClientNotFound
	}
	if err != nil {
		return nil, dbError("buscar cliente", err)
	}
	return c, nil
}

// where monta o filtro compartilhado por List e Count
func (r *PostgresClientRepository) where(tenantID string, f client.ListFilter) (string, []any) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List implementa client.Repository.List
func (r *PostgresClientRepository) List(ctx context.Context, tenantID string, f client.ListFilter) ([]*client.Client, error) {
	where, args := r.where(tenantID, f)
	query, args := limitOffset(`SELECT `+clientColumns+` FROM clients`+where+` ORDER BY name`, args, f.Limit, f.Offset)
	return queryList(ctx, r.db, "listar clientes", scanClient, query, args...)
}

// Count implementa client.Repository.Count
func (r *PostgresClientRepository) Count(ctx context.Context, tenantID string, f client.ListFilter) (int, error) {
	where, args := r.where(tenantID, f)
	return countRows(ctx, r.db, "contar clientes", `SELECT COUNT(*) FROM clients`+where, args...)
}

// Update implementa client.Repository.Update
func (r *PostgresClientRepository) Update(ctx context.Context, c *client.Client) error {
	attrs, err := toJSON(c.Attributes, "{}")
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, "atualizar cliente", client.ErrClientNotFound, `
		UPDATE clients SET
			business_category = $3, name = $4, document = $5, email = $6, phone = $7,
			birth_date = $8, notes = $9, attributes = $10, status = $11,
			last_purchase_at = $12, updated_at = $13
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, c.BusinessCategory, c.Name, c.Document, c.Email, c.Phone,
		c.BirthDate, c.Notes, attrs, c.Status, c.LastPurchaseAt, c.UpdatedAt,
	)
}

// Delete implementa client.Repository.Delete
func (r *PostgresClientRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir cliente", client.ErrClientNotFound,
		`DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanClient(row rowScanner) (*client.Client, error) {
	c := &client.Client{}
	err := row.Scan(
		&c.ID, &c.TenantID, &c.BusinessCategory, &c.Name, &c.Document, &c.Email, &c.Phone, &c.BirthDate,
		&c.Notes, &c.Attributes, &c.Status, &c.LastPurchaseAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
