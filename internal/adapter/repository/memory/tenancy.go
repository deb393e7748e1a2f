package memory

import (
	"context"
	"strings"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
)

type companyRepo struct{ base }

func (r *companyRepo) Create(_ context.Context, c *company.Company) error {
	return r.write(func(d *dataset) error {
		for _, other := range d.companies.rows {
			if other.Document == c.Document {
				return company.ErrDuplicateCompany
			}
		}
		d.companies.put(c.ID, c)
		return nil
	})
}

func (r *companyRepo) FindByID(_ context.Context, id string) (*company.Company, error) {
	var (
		c  *company.Company
		ok bool
	)
	r.read(func(d *dataset) { c, ok = d.companies.get(id) })
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *companyRepo) FindByDocument(_ context.Context, document string) (*company.Company, error) {
	var found []*company.Company
	r.read(func(d *dataset) {
		found = d.companies.filter(func(c *company.Company) bool { return c.Document == document }, nil)
	})
	if len(found) == 0 {
		return nil, company.ErrCompanyNotFound
	}
	return found[0], nil
}

func (r *companyRepo) Update(_ context.Context, c *company.Company) error {
	return r.write(func(d *dataset) error {
		if !d.companies.has(c.ID) {
			return company.ErrCompanyNotFound
		}
		d.companies.put(c.ID, c)
		return nil
	})
}

type branchRepo struct{ base }

func (r *branchRepo) Create(_ context.Context, b *branch.Branch) error {
	return r.write(func(d *dataset) error {
		d.branches.put(b.ID, b)
		return nil
	})
}

func (r *branchRepo) FindByID(_ context.Context, tenantID, id string) (*branch.Branch, error) {
	var (
		b  *branch.Branch
		ok bool
	)
	r.read(func(d *dataset) { b, ok = d.branches.get(id) })
	if !ok || b.TenantID != tenantID {
		return nil, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *branchRepo) FindMainBranch(_ context.Context, tenantID string) (*branch.Branch, error) {
	var found []*branch.Branch
	r.read(func(d *dataset) {
		found = d.branches.filter(func(b *branch.Branch) bool { return b.TenantID == tenantID && b.IsMain }, nil)
	})
	if len(found) == 0 {
		return nil, branch.ErrBranchNotFound
	}
	return found[0], nil
}

func (r *branchRepo) Update(_ context.Context, b *branch.Branch) error {
	return r.write(func(d *dataset) error {
		cur, ok := d.branches.rows[b.ID]
		if !ok || cur.TenantID != b.TenantID {
			return branch.ErrBranchNotFound
		}
		d.branches.put(b.ID, b)
		return nil
	})
}

func (r *branchRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.write(func(d *dataset) error {
		cur, ok := d.branches.rows[id]
		if !ok || cur.TenantID != tenantID {
			return branch.ErrBranchNotFound
		}
		d.branches.remove(id)
		return nil
	})
}

func (r *branchRepo) ListByTenant(_ context.Context, tenantID string) ([]*branch.Branch, error) {
	var out []*branch.Branch
	r.read(func(d *dataset) {
		out = d.branches.filter(
			func(b *branch.Branch) bool { return b.TenantID == tenantID },
			func(a, b *branch.Branch) bool {
				if a.IsMain != b.IsMain {
					return a.IsMain
				}
				return a.Name < b.Name
			})
	})
	return out, nil
}

func (r *branchRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	list, err := r.ListByTenant(ctx, tenantID)
	return len(list), err
}

type userRepo struct{ base }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	return r.write(func(d *dataset) error {
		for _, other := range d.users.rows {
			if other.TenantID == u.TenantID && strings.EqualFold(other.Email, u.Email) {
				return user.ErrDuplicateEmail
			}
		}
		d.users.put(u.ID, u)
		return nil
	})
}

func (r *userRepo) FindByID(_ context.Context, tenantID, id string) (*user.User, error) {
	var (
		u  *user.User
		ok bool
	)
	r.read(func(d *dataset) { u, ok = d.users.get(id) })
	if !ok || u.TenantID != tenantID {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, tenantID, email string) (*user.User, error) {
	var found []*user.User
	r.read(func(d *dataset) {
		found = d.users.filter(func(u *user.User) bool {
			return u.TenantID == tenantID && strings.EqualFold(u.Email, email)
		}, nil)
	})
	if len(found) == 0 {
		return nil, user.ErrUserNotFound
	}
	return found[0], nil
}

func (r *userRepo) List(_ context.Context, tenantID string) ([]*user.User, error) {
	var out []*user.User
	r.read(func(d *dataset) {
		out = d.users.filter(
			func(u *user.User) bool { return u.TenantID == tenantID },
			func(a, b *user.User) bool { return a.Name < b.Name })
	})
	return out, nil
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	return r.write(func(d *dataset) error {
		cur, ok := d.users.rows[u.ID]
		if !ok || cur.TenantID != u.TenantID {
			return user.ErrUserNotFound
		}
		for _, other := range d.users.rows {
			if other.ID != u.ID && other.TenantID == u.TenantID && strings.EqualFold(other.Email, u.Email) {
				return user.ErrDuplicateEmail
			}
		}
		d.users.put(u.ID, u)
		return nil
	})
}

func (r *userRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.write(func(d *dataset) error {
		cur, ok := d.users.rows[id]
		if !ok || cur.TenantID != tenantID {
			return user.ErrUserNotFound
		}
		d.users.remove(id)
		return nil
	})
}

func (r *userRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	list, err := r.List(ctx, tenantID)
	return len(list), err
}
