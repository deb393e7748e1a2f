package orm

import (
	"context"

	"gorm.io/gorm"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
)

type saleRepo struct{ db *gorm.DB }

func (r *saleRepo) Create(ctx context.Context, s *sale.Sale) error {
	return create(ctx, r.db, s, nil)
}

func (r *saleRepo) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	return first[sale.Sale](ctx, r.db, sale.ErrSaleNotFound, byTenantAndID, tenantID, id)
}

func (r *saleRepo) List(ctx context.Context, tenantID string, f sale.ListFilter) ([]*sale.Sale, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	var list []*sale.Sale
	if err := paged(q, f.Limit, f.Offset).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, wrap("listar vendas", err)
	}
	return list, nil
}

func (r *saleRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[sale.Sale](ctx, r.db, tenantID, id, sale.ErrSaleNotFound)
}

type entryRepo struct{ db *gorm.DB }

func (r *entryRepo) Create(ctx context.Context, e *finance.Entry) error {
	return create(ctx, r.db, e, nil)
}

func (r *entryRepo) FindByID(ctx context.Context, tenantID, id string) (*finance.Entry, error) {
	return first[finance.Entry](ctx, r.db, finance.ErrEntryNotFound, byTenantAndID, tenantID, id)
}

func (r *entryRepo) List(ctx context.Context, tenantID string, f finance.ListFilter) ([]*finance.Entry, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.DueFrom != nil {
		q = q.Where("due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		q = q.Where("due_date <= ?", *f.DueTo)
	}
	var list []*finance.Entry
	if err := paged(q, f.Limit, f.Offset).Order("due_date").Order("created_at").Find(&list).Error; err != nil {
		return nil, wrap("listar lançamentos", err)
	}
	return list, nil
}

func (r *entryRepo) Update(ctx context.Context, e *finance.Entry) error {
	return save(ctx, r.db, e, e.TenantID, e.ID, finance.ErrEntryNotFound, nil)
}

func (r *entryRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[finance.Entry](ctx, r.db, tenantID, id, finance.ErrEntryNotFound)
}
