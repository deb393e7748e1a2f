package memory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
)

type clientRepo struct{ base }

func (r *clientRepo) s() scoped[client.Client] {
	return scoped[client.Client]{
		base:     r.base,
		table:    func(d *dataset) table[client.Client] { return d.clients },
		key:      func(c *client.Client) (string, string) { return c.TenantID, c.ID },
		notFound: client.ErrClientNotFound,
	}
}

func (r *clientRepo) Create(_ context.Context, c *client.Client) error {
	return r.s().insert(c, nil)
}

func (r *clientRepo) FindByID(_ context.Context, tenantID, id string) (*client.Client, error) {
	return r.s().find(tenantID, id)
}

func (r *clientRepo) matching(tenantID string, f client.ListFilter) []*client.Client {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	return r.s().list(tenantID, func(c *client.Client) bool {
		if f.Status != "" && c.Status != f.Status {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(c.Phone, search) ||
			strings.Contains(strings.ToLower(c.Email), search)
	}, func(a, b *client.Client) bool { return a.Name < b.Name })
}

func (r *clientRepo) List(_ context.Context, tenantID string, f client.ListFilter) ([]*client.Client, error) {
	return paginate(r.matching(tenantID, f), f.Limit, f.Offset), nil
}

func (r *clientRepo) Count(_ context.Context, tenantID string, f client.ListFilter) (int, error) {
	return len(r.matching(tenantID, f)), nil
}

func (r *clientRepo) Update(_ context.Context, c *client.Client) error {
	return r.s().replace(c, nil)
}

func (r *clientRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}

type productRepo struct{ base }

func (r *productRepo) s() scoped[product.Product] {
	return scoped[product.Product]{
		base:     r.base,
		table:    func(d *dataset) table[product.Product] { return d.products },
		key:      func(p *product.Product) (string, string) { return p.TenantID, p.ID },
		notFound: product.ErrProductNotFound,
	}
}

func (r *productRepo) Create(_ context.Context, p *product.Product) error {
	return r.s().insert(p, nil)
}

func (r *productRepo) FindByID(_ context.Context, tenantID, id string) (*product.Product, error) {
	return r.s().find(tenantID, id)
}

func (r *productRepo) FindByIDs(_ context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	out := make(map[string]*product.Product, len(ids))
	r.read(func(d *dataset) {
		for _, id := range ids {
			if p, ok := d.products.get(id); ok && p.TenantID == tenantID {
				out[id] = p
			}
		}
	})
	return out, nil
}

// LockByIDs não precisa de bloqueio por linha: dentro de WithinTx o lock de
// escrita do Store já está retido.
func (r *productRepo) LockByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	return r.FindByIDs(ctx, tenantID, ids)
}

func (r *productRepo) List(_ context.Context, tenantID string, f product.ListFilter) ([]*product.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	list := r.s().list(tenantID, func(p *product.Product) bool {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			return false
		}
		if f.OnlyAvailable && !p.Available {
			return false
		}
		if f.OnlyLowStock && !p.IsLowStock() {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && p.Barcode != f.Search {
			return false
		}
		return true
	}, func(a, b *product.Product) bool { return a.Name < b.Name })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *productRepo) Update(_ context.Context, p *product.Product) error {
	return r.s().replace(p, nil)
}

func (r *productRepo) UpdateStock(_ context.Context, tenantID, id string, stock decimal.Decimal) error {
	return r.write(func(d *dataset) error {
		p, ok := d.products.get(id)
		if !ok || p.TenantID != tenantID {
			return product.ErrProductNotFound
		}
		p.Stock = stock
		d.products.put(id, p)
		return nil
	})
}

func (r *productRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}

type couponRepo struct{ base }

func (r *couponRepo) s() scoped[coupon.Coupon] {
	return scoped[coupon.Coupon]{
		base:     r.base,
		table:    func(d *dataset) table[coupon.Coupon] { return d.coupons },
		key:      func(c *coupon.Coupon) (string, string) { return c.TenantID, c.ID },
		notFound: coupon.ErrCouponNotFound,
	}
}

func uniqueCode(c *coupon.Coupon) func(d *dataset) error {
	return func(d *dataset) error {
		for _, other := range d.coupons.rows {
			if other.ID != c.ID && other.TenantID == c.TenantID && other.Code == c.Code {
				return coupon.ErrDuplicateCode
			}
		}
		return nil
	}
}

func (r *couponRepo) Create(_ context.Context, c *coupon.Coupon) error {
	return r.s().insert(c, uniqueCode(c))
}

func (r *couponRepo) FindByID(_ context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return r.s().find(tenantID, id)
}

func (r *couponRepo) FindByCode(_ context.Context, tenantID, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)
	found := r.s().list(tenantID, func(c *coupon.Coupon) bool { return c.Code == code }, nil)
	if len(found) == 0 {
		return nil, coupon.ErrCouponNotFound
	}
	return found[0], nil
}

func (r *couponRepo) List(_ context.Context, tenantID string, onlyActive bool) ([]*coupon.Coupon, error) {
	return r.s().list(tenantID,
		func(c *coupon.Coupon) bool { return !onlyActive || c.Active },
		func(a, b *coupon.Coupon) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

// Update preserva o contador de usos, que só muda por IncrementUsage
func (r *couponRepo) Update(_ context.Context, c *coupon.Coupon) error {
	return r.write(func(d *dataset) error {
		cur, ok := d.coupons.rows[c.ID]
		if !ok || cur.TenantID != c.TenantID {
			return coupon.ErrCouponNotFound
		}
		if err := uniqueCode(c)(d); err != nil {
			return err
		}
		updated := *c
		updated.UsageCount = cur.UsageCount
		d.coupons.put(c.ID, &updated)
		return nil
	})
}

func (r *couponRepo) IncrementUsage(_ context.Context, tenantID, id string) error {
	return r.write(func(d *dataset) error {
		c, ok := d.coupons.get(id)
		if !ok || c.TenantID != tenantID {
			return coupon.ErrCouponNotFound
		}
		if err := c.Redeem(time.Now()); err != nil {
			return err
		}
		d.coupons.put(id, c)
		return nil
	})
}
