package orm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
)

type clientRepo struct{ db *gorm.DB }

func (r *clientRepo) Create(ctx context.Context, c *client.Client) error {
	return create(ctx, r.db, c, nil)
}

func (r *clientRepo) FindByID(ctx context.Context, tenantID, id string) (*client.Client, error) {
	return first[client.Client](ctx, r.db, client.ErrClientNotFound, byTenantAndID, tenantID, id)
}

func (r *clientRepo) filtered(ctx context.Context, tenantID string, f client.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&client.Client{}).Where("tenant_id = ?", tenantID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	return q
}

func (r *clientRepo) List(ctx context.Context, tenantID string, f client.ListFilter) ([]*client.Client, error) {
	var list []*client.Client
	if err := paged(r.filtered(ctx, tenantID, f), f.Limit, f.Offset).Order("name").Find(&list).Error; err != nil {
		return nil, wrap("listar clientes", err)
	}
	return list, nil
}

func (r *clientRepo) Count(ctx context.Context, tenantID string, f client.ListFilter) (int, error) {
	var n int64
	if err := r.filtered(ctx, tenantID, f).Count(&n).Error; err != nil {
		return 0, wrap("contar clientes", err)
	}
	return int(n), nil
}

func (r *clientRepo) Update(ctx context.Context, c *client.Client) error {
	return save(ctx, r.db, c, c.TenantID, c.ID, client.ErrClientNotFound, nil)
}

func (r *clientRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[client.Client](ctx, r.db, tenantID, id, client.ErrClientNotFound)
}

type productRepo struct{ db *gorm.DB }

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	return create(ctx, r.db, p, nil)
}

func (r *productRepo) FindByID(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return first[product.Product](ctx, r.db, product.ErrProductNotFound, byTenantAndID, tenantID, id)
}

func (r *productRepo) findMany(db *gorm.DB, tenantID string, ids []string) (map[string]*product.Product, error) {
	out := make(map[string]*product.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []*product.Product
	if err := db.Where("tenant_id = ? AND id IN ?", tenantID, ids).Order("id").Find(&list).Error; err != nil {
		return nil, wrap("buscar produtos", err)
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	return r.findMany(r.db.WithContext(ctx), tenantID, ids)
}

func (r *productRepo) LockByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	return r.findMany(forUpdate(r.db.WithContext(ctx)), tenantID, ids)
}

func (r *productRepo) List(ctx context.Context, tenantID string, f product.ListFilter) ([]*product.Product, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.OnlyAvailable {
		q = q.Where("available = ?", true)
	}
	if f.OnlyLowStock {
		q = q.Where("min_stock > 0 AND stock <= min_stock")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR barcode = ?", "%"+strings.ToLower(s)+"%", s)
	}

	var list []*product.Product
	if err := paged(q, f.Limit, f.Offset).Order("name").Find(&list).Error; err != nil {
		return nil, wrap("listar produtos", err)
	}
	return list, nil
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	return save(ctx, r.db, p, p.TenantID, p.ID, product.ErrProductNotFound, nil)
}

func (r *productRepo) UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&product.Product{}).Where(byTenantAndID, tenantID, id).
		Updates(map[string]any{"stock": stock, "updated_at": time.Now()})
	if res.Error != nil {
		return wrap("atualizar estoque", res.Error)
	}
	if res.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[product.Product](ctx, r.db, tenantID, id, product.ErrProductNotFound)
}

type couponRepo struct{ db *gorm.DB }

func (r *couponRepo) Create(ctx context.Context, c *coupon.Coupon) error {
	return create(ctx, r.db, c, coupon.ErrDuplicateCode)
}

func (r *couponRepo) FindByID(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return first[coupon.Coupon](ctx, r.db, coupon.ErrCouponNotFound, byTenantAndID, tenantID, id)
}

func (r *couponRepo) FindByCode(ctx context.Context, tenantID, code string) (*coupon.Coupon, error) {
	return first[coupon.Coupon](ctx, r.db, coupon.ErrCouponNotFound, "tenant_id = ? AND code = ?", tenantID, coupon.NormalizeCode(code))
}

func (r *couponRepo) List(ctx context.Context, tenantID string, onlyActive bool) ([]*coupon.Coupon, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var list []*coupon.Coupon
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, wrap("listar cupons", err)
	}
	return list, nil
}

// Update não grava usage_count, que só muda por IncrementUsage
func (r *couponRepo) Update(ctx context.Context, c *coupon.Coupon) error {
	res := r.db.WithContext(ctx).Model(c).Where(byTenantAndID, c.TenantID, c.ID).
		Select("*").Omit("usage_count", "created_at").Updates(c)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return coupon.ErrDuplicateCode
	}
	if res.Error != nil {
		return wrap("atualizar cupom", res.Error)
	}
	if res.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

// IncrementUsage faz a contagem com uma atualização condicional, de modo que
// dois checkouts concorrentes nunca ultrapassem o limite de usos.
func (r *couponRepo) IncrementUsage(ctx context.Context, tenantID, id string) error {
	res := r.db.WithContext(ctx).Model(&coupon.Coupon{}).
		Where(byTenantAndID, tenantID, id).
		Where("active = ? AND (max_uses = 0 OR usage_count < max_uses)", true).
		Updates(map[string]any{
			"usage_count": gorm.Expr("usage_count + 1"),
			"active":      gorm.Expr("CASE WHEN max_uses > 0 AND usage_count + 1 >= max_uses THEN ? ELSE active END", false),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return wrap("registrar uso do cupom", res.Error)
	}
	if res.RowsAffected > 0 {
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
