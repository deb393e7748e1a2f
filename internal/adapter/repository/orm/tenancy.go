package orm

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
)

type companyRepo struct{ db *gorm.DB }

func (r *companyRepo) Create(ctx context.Context, c *company.Company) error {
	return create(ctx, r.db, c, company.ErrDuplicateCompany)
}

func (r *companyRepo) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return first[company.Company](ctx, r.db, company.ErrCompanyNotFound, "id = ?", id)
}

func (r *companyRepo) FindByDocument(ctx context.Context, document string) (*company.Company, error) {
	return first[company.Company](ctx, r.db, company.ErrCompanyNotFound, "document = ?", document)
}

func (r *companyRepo) Update(ctx context.Context, c *company.Company) error {
	res := r.db.WithContext(ctx).Model(c).Where("id = ?", c.ID).Select("*").Updates(c)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return company.ErrDuplicateCompany
	}
	if res.Error != nil {
		return wrap("atualizar empresa", res.Error)
	}
	if res.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

type branchRepo struct{ db *gorm.DB }

func (r *branchRepo) Create(ctx context.Context, b *branch.Branch) error {
	return create(ctx, r.db, b, nil)
}

func (r *branchRepo) FindByID(ctx context.Context, tenantID, id string) (*branch.Branch, error) {
	return first[branch.Branch](ctx, r.db, branch.ErrBranchNotFound, byTenantAndID, tenantID, id)
}

func (r *branchRepo) FindMainBranch(ctx context.Context, tenantID string) (*branch.Branch, error) {
	return first[branch.Branch](ctx, r.db, branch.ErrBranchNotFound, "tenant_id = ? AND is_main = ?", tenantID, true)
}

func (r *branchRepo) Update(ctx context.Context, b *branch.Branch) error {
	return save(ctx, r.db, b, b.TenantID, b.ID, branch.ErrBranchNotFound, nil)
}

func (r *branchRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[branch.Branch](ctx, r.db, tenantID, id, branch.ErrBranchNotFound)
}

func (r *branchRepo) ListByTenant(ctx context.Context, tenantID string) ([]*branch.Branch, error) {
	var list []*branch.Branch
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("is_main DESC").Order("name").Find(&list).Error
	if err != nil {
		return nil, wrap("listar filiais", err)
	}
	return list, nil
}

func (r *branchRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&branch.Branch{}).Where("tenant_id = ?", tenantID).Count(&n).Error; err != nil {
		return 0, wrap("contar filiais", err)
	}
	return int(n), nil
}

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	return create(ctx, r.db, u, user.ErrDuplicateEmail)
}

func (r *userRepo) FindByID(ctx context.Context, tenantID, id string) (*user.User, error) {
	return first[user.User](ctx, r.db, user.ErrUserNotFound, byTenantAndID, tenantID, id)
}

func (r *userRepo) FindByEmail(ctx context.Context, tenantID, email string) (*user.User, error) {
	return first[user.User](ctx, r.db, user.ErrUserNotFound, "tenant_id = ? AND email = ?", tenantID, strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepo) List(ctx context.Context, tenantID string) ([]*user.User, error) {
	var list []*user.User
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("name").Find(&list).Error; err != nil {
		return nil, wrap("listar usuários", err)
	}
	return list, nil
}

func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	return save(ctx, r.db, u, u.TenantID, u.ID, user.ErrUserNotFound, user.ErrDuplicateEmail)
}

func (r *userRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[user.User](ctx, r.db, tenantID, id, user.ErrUserNotFound)
}

func (r *userRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Where("tenant_id = ?", tenantID).Count(&n).Error; err != nil {
		return 0, wrap("contar usuários", err)
	}
	return int(n), nil
}
