package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const couponColumns = `id, tenant_id, business_category, code, name, description, campaign_type,
	discount_type, discount_value, min_purchase_amount, target_categories, usage_count, max_uses,
	active, valid_from, valid_until, created_at, updated_at`

// PostgresCouponRepository implementa coupon.Repository usando PostgreSQL
type PostgresCouponRepository struct {
	db database.PGXDB
}

// NewPostgresCouponRepository cria uma nova instância de PostgresCouponRepository
func NewPostgresCouponRepository(db database.PGXDB) *PostgresCouponRepository {
	return &PostgresCouponRepository{db: db}
}

// Create implementa coupon.Repository.Create
func (r *PostgresCouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	targets, err := toJSON(c.TargetCategories, "[]")
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO coupons (`+couponColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		c.ID, c.TenantID, c.BusinessCategory, c.Code, c.Name, c.Description, c.CampaignType,
		c.DiscountType, c.DiscountValue, c.MinPurchaseAmount, targets, c.UsageCount, c.MaxUses,
		c.Active, c.ValidFrom, c.ValidUntil, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return coupon.ErrDuplicateCode
	}
	if err != nil {
		return dbError("inserir cupom", err)
	}
	return nil
}

// FindByID implementa coupon.Repository.FindByID
func (r *PostgresCouponRepository) FindByID(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return r.findOne(ctx, `SELECT `+couponColumns+` FROM coupons WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByCode implementa coupon.Repository.FindByCode
func (r *PostgresCouponRepository) FindByCode(ctx context.Context, tenantID, code string) (*coupon.Coupon, error) {
	return r.findOne(ctx, `SELECT `+couponColumns+` FROM coupons WHERE tenant_id = $1 AND code = $2`,
		tenantID, coupon.NormalizeCode(code))
}

// List implementa coupon.Repository.List
func (r *PostgresCouponRepository) List(ctx context.Context, tenantID string, onlyActive bool) ([]*coupon.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE tenant_id = $1`
	if onlyActive {
		query += ` AND active = true`
	}
	return queryList(ctx, r.db, "listar cupons", scanCoupon, query+` ORDER BY created_at DESC`, tenantID)
}

// Update implementa coupon.Repository.Update
func (r *PostgresCouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	targets, err := toJSON(c.TargetCategories, "[]")
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons SET
			business_category = $3, code = $4, name = $5, description = $6, campaign_type = $7,
			discount_type = $8, discount_value = $9, min_purchase_amount = $10,
			target_categories = $11, max_uses = $12, active = $13, valid_from = $14,
			valid_until = $15, updated_at = $16
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, c.BusinessCategory, c.Code, c.Name, c.Description, c.CampaignType,
		c.DiscountType, c.DiscountValue, c.MinPurchaseAmount,
		targets, c.MaxUses, c.Active, c.ValidFrom,
		c.ValidUntil, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return coupon.ErrDuplicateCode
	}
	if err != nil {
		return dbError("atualizar cupom", err)
	}
	if tag.RowsAffected() == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

// IncrementUsage implementa coupon.Repository.IncrementUsage com uma
// atualização condicional; usage_count nunca passa de max_uses.
func (r *PostgresCouponRepository) IncrementUsage(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons SET
			usage_count = usage_count + 1,
			active = CASE WHEN max_uses > 0 AND usage_count + 1 >= max_uses THEN false ELSE active END,
			updated_at = $3
		WHERE tenant_id = $1 AND id = $2
			AND active = true
			AND (max_uses = 0 OR usage_count < max_uses)`,
		tenantID, id, time.Now(),
	)
	if err != nil {
		return dbError("registrar uso do cupom", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	c, err := r.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !c.Active {
		return coupon.ErrInactive
	}
	return coupon.ErrExhausted
}

func (r *PostgresCouponRepository) findOne(ctx context.Context, query string, args ...any) (*coupon.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, coupon.ErrCouponNotFound
	}
	if err != nil {
		return nil, dbError("buscar cupom", err)
	}
	return c, nil
}

func scanCoupon(row rowScanner) (*coupon.Coupon, error) {
	c := &coupon.Coupon{}
	err := row.Scan(
		&c.ID, &c.TenantID, &c.BusinessCategory, &c.Code, &c.Name, &c.Description, &c.CampaignType,
		&c.DiscountType, &c.DiscountValue, &c.MinPurchaseAmount, &c.TargetCategories, &c.UsageCount, &c.MaxUses,
		&c.Active, &c.ValidFrom, &c.ValidUntil, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
