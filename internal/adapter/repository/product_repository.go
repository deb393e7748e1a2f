package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const productColumns = `id, tenant_id, business_category, name, description, barcode, category, price,
	stock, min_stock, unit, perishable, manufacturing_date, expiry_date, available, ingredients,
	created_at, updated_at`

// PostgresProductRepository implementa product.Repository usando PostgreSQL
type PostgresProductRepository struct {
	db database.PGXDB
}

// NewPostgresProductRepository cria uma nova instância de PostgresProductRepository
func NewPostgresProductRepository(db database.PGXDB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// Create implementa product.Repository.Create
func (r *PostgresProductRepository) Create(ctx context.Context, p *product.Product) error {
	ingredients, err := toJSON(p.Ingredients, "[]")
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.TenantID, p.BusinessCategory, p.Name, p.Description, p.Barcode, p.Category, p.Price,
		p.Stock, p.MinStock, p.Unit, p.Perishable, p.ManufacturingDate, p.ExpiryDate, p.Available, ingredients,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir produto", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *PostgresProductRepository) FindByID(ctx context.Context, tenantID, id string) (*product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, dbError("buscar produto", err)
	}
	return p, nil
}

// FindByIDs implementa product.Repository.FindByIDs
func (r *PostgresProductRepository) FindByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	return r.findMany(ctx, tenantID, ids, "")
}

// LockByIDs implementa product.Repository.LockByIDs. As linhas são
// bloqueadas em ordem de ID para evitar deadlock entre checkouts.
func (r *PostgresProductRepository) LockByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	return r.findMany(ctx, tenantID, ids, " FOR UPDATE")
}

func (r *PostgresProductRepository) findMany(ctx context.Context, tenantID string, ids []string, suffix string) (map[string]*product.Product, error) {
	out := make(map[string]*product.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := queryList(ctx, r.db, "buscar produtos", scanProduct,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = ANY($2) ORDER BY id`+suffix,
		tenantID, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// List implementa product.Repository.List
func (r *PostgresProductRepository) List(ctx context.Context, tenantID string, f product.ListFilter) ([]*product.Product, error) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(args)))
	}
	if f.OnlyAvailable {
		conds = append(conds, "available = true")
	}
	if f.OnlyLowStock {
		conds = append(conds, "min_stock > 0 AND stock <= min_stock")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%", s)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR barcode = $%d)", len(args)-1, len(args)))
	}

	query, args := limitOffset(
		`SELECT `+productColumns+` FROM products WHERE `+strings.Join(conds, " AND ")+` ORDER BY name`,
		args, f.Limit, f.Offset)
	return queryList(ctx, r.db, "listar produtos", scanProduct, query, args...)
}

// Update implementa product.Repository.Update
func (r *PostgresProductRepository) Update(ctx context.Context, p *product.Product) error {
	ingredients, err := toJSON(p.Ingredients, "[]")
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, "atualizar produto", product.ErrProductNotFound, `
		UPDATE products SET
			business_category = $3, name = $4, description = $5, barcode = $6, category = $7,
			price = $8, stock = $9, min_stock = $10, unit = $11, perishable = $12,
			manufacturing_date = $13, expiry_date = $14, available = $15, ingredients = $16,
			updated_at = $17
		WHERE tenant_id = $1 AND id = $2`,
		p.TenantID, p.ID, p.BusinessCategory, p.Name, p.Description, p.Barcode, p.Category,
		p.Price, p.Stock, p.MinStock, p.Unit, p.Perishable,
		p.ManufacturingDate, p.ExpiryDate, p.Available, ingredients,
		p.UpdatedAt,
	)
}

// UpdateStock implementa product.Repository.UpdateStock
func (r *PostgresProductRepository) UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error {
	return execAffecting(ctx, r.db, "atualizar estoque", product.ErrProductNotFound,
		`UPDATE products SET stock = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, stock, time.Now())
}

// Delete implementa product.Repository.Delete
func (r *PostgresProductRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir produto", product.ErrProductNotFound,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanProduct(row rowScanner) (*product.Product, error) {
	p := &product.Product{}
	err := row.Scan(
		&p.ID, &p.TenantID, &p.BusinessCategory, &p.Name, &p.Description, &p.Barcode, &p.Category, &p.Price,
		&p.Stock, &p.MinStock, &p.Unit, &p.Perishable, &p.ManufacturingDate, &p.ExpiryDate, &p.Available, &p.Ingredients,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
