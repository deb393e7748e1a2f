package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const companyColumns = `id, name, document, email, phone, business_category, status, plan_type, max_branches, created_at, updated_at`

// PostgresCompanyRepository implementa company.Repository usando PostgreSQL
type PostgresCompanyRepository struct {
	db database.PGXDB
}

// NewPostgresCompanyRepository cria uma nova instância de PostgresCompanyRepository
func NewPostgresCompanyRepository(db database.PGXDB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

// Create implementa company.Repository.Create
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.BusinessCategory, c.Status,
		c.PlanType, c.MaxBranches, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return company.ErrDuplicateCompany
	}
	if err != nil {
		return dbError("inserir empresa", err)
	}
	return nil
}

// FindByID implementa company.Repository.FindByID
func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return r.findOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// FindByDocument implementa company.Repository.FindByDocument
func (r *PostgresCompanyRepository) FindByDocument(ctx context.Context, document string) (*company.Company, error) {
	return r.findOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE document = $1`, document)
}

// Update implementa company.Repository.Update
func (r *PostgresCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies SET
			name = $2, document = $3, email = $4, phone = $5, business_category = $6,
			status = $7, plan_type = $8, max_branches = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.BusinessCategory,
		c.Status, c.PlanType, c.MaxBranches, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return company.ErrDuplicateCompany
	}
	if err != nil {
		return dbError("atualizar empresa", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) findOne(ctx context.Context, query string, args ...any) (*company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, company.ErrCompanyNotFound
	}
	if err != nil {
		return nil, dbError("buscar empresa", err)
	}
	return c, nil
}

func scanCompany(row rowScanner) (*company.Company, error) {
	c := &company.Company{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.BusinessCategory,
		&c.Status, &c.PlanType, &c.MaxBranches, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
