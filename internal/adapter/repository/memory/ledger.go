package memory

import (
	"context"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
)

type saleRepo struct{ base }

func (r *saleRepo) s() scoped[sale.Sale] {
	return scoped[sale.Sale]{
		base:     r.base,
		table:    func(d *dataset) table[sale.Sale] { return d.sales },
		key:      func(s *sale.Sale) (string, string) { return s.TenantID, s.ID },
		notFound: sale.ErrSaleNotFound,
	}
}

func (r *saleRepo) Create(_ context.Context, s *sale.Sale) error {
	return r.s().insert(s, nil)
}

func (r *saleRepo) FindByID(_ context.Context, tenantID, id string) (*sale.Sale, error) {
	return r.s().find(tenantID, id)
}

func (r *saleRepo) List(_ context.Context, tenantID string, f sale.ListFilter) ([]*sale.Sale, error) {
	list := r.s().list(tenantID, func(s *sale.Sale) bool {
		if f.ClientID != "" && s.ClientID != f.ClientID {
			return false
		}
		if f.From != nil && s.CreatedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && s.CreatedAt.After(*f.To) {
			return false
		}
		return true
	}, func(a, b *sale.Sale) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *saleRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}

type entryRepo struct{ base }

func (r *entryRepo) s() scoped[finance.Entry] {
	return scoped[finance.Entry]{
		base:     r.base,
		table:    func(d *dataset) table[finance.Entry] { return d.entries },
		key:      func(e *finance.Entry) (string, string) { return e.TenantID, e.ID },
		notFound: finance.ErrEntryNotFound,
	}
}

func (r *entryRepo) Create(_ context.Context, e *finance.Entry) error {
	return r.s().insert(e, nil)
}

func (r *entryRepo) FindByID(_ context.Context, tenantID, id string) (*finance.Entry, error) {
	return r.s().find(tenantID, id)
}

func (r *entryRepo) List(_ context.Context, tenantID string, f finance.ListFilter) ([]*finance.Entry, error) {
	list := r.s().list(tenantID, func(e *finance.Entry) bool {
		if f.Kind != "" && e.Kind != f.Kind {
			return false
		}
		if f.DueFrom != nil && e.DueDate.Before(*f.DueFrom) {
			return false
		}
		if f.DueTo != nil && e.DueDate.After(*f.DueTo) {
			return false
		}
		return true
	}, func(a, b *finance.Entry) bool {
		if a.DueDate.Equal(b.DueDate) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.DueDate.Before(b.DueDate)
	})
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *entryRepo) Update(_ context.Context, e *finance.Entry) error {
	return r.s().replace(e, nil)
}

func (r *entryRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}
