package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const saleColumns = `id, tenant_id, business_category, branch_id, client_id, items, subtotal,
	manual_discount, coupon_id, coupon_code, coupon_discount, total, payment_method, notes, created_at`

// PostgresSaleRepository implementa sale.Repository usando PostgreSQL
type PostgresSaleRepository struct {
	db database.PGXDB
}

// NewPostgresSaleRepository cria uma nova instância de PostgresSaleRepository
func NewPostgresSaleRepository(db database.PGXDB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

// Create implementa sale.Repository.Create
func (r *PostgresSaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	items, err := toJSON(s.Items, "[]")
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.TenantID, s.BusinessCategory, s.BranchID, s.ClientID, items, s.Subtotal,
		s.ManualDiscount, s.CouponID, s.CouponCode, s.CouponDiscount, s.Total, s.PaymentMethod, s.Notes, s.CreatedAt,
	)
	if err != nil {
		return dbError("inserir venda", err)
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *PostgresSaleRepository) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sale.ErrSaleNotFound
	}
	if err != nil {
		return nil, dbError("buscar venda", err)
	}
	return s, nil
}

// List implementa sale.Repository.List
func (r *PostgresSaleRepository) List(ctx context.Context, tenantID string, f sale.ListFilter) ([]*sale.Sale, error) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	query, args := limitOffset(
		`SELECT `+saleColumns+` FROM sales WHERE `+strings.Join(conds, " AND ")+` ORDER BY created_at DESC`,
		args, f.Limit, f.Offset)
	return queryList(ctx, r.db, "listar vendas", scanSale, query, args...)
}

// Delete implementa sale.Repository.Delete
func (r *PostgresSaleRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir venda", sale.ErrSaleNotFound,
		`DELETE FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanSale(row rowScanner) (*sale.Sale, error) {
	s := &sale.Sale{}
	err := row.Scan(
		&s.ID, &s.TenantID, &s.BusinessCategory, &s.BranchID, &s.ClientID, &s.Items, &s.Subtotal,
		&s.ManualDiscount, &s.CouponID, &s.CouponCode, &s.CouponDiscount, &s.Total, &s.PaymentMethod, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
