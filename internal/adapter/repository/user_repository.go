package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const userColumns = `id, tenant_id, branch_id, name, email, password, role, status, last_login_at, created_at, updated_at`

// PostgresUserRepository implementa user.Repository usando PostgreSQL
type PostgresUserRepository struct {
	db database.PGXDB
}

// NewPostgresUserRepository cria uma nova instância de PostgresUserRepository
func NewPostgresUserRepository(db database.PGXDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create implementa user.Repository.Create
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.TenantID, u.BranchID, u.Name, u.Email, u.Password, u.Role, u.Status,
		u.LastLoginAt, u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return user.ErrDuplicateEmail
	}
	if err != nil {
		return dbError("inserir usuário", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *PostgresUserRepository) FindByID(ctx context.Context, tenantID, id string) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, tenantID, email string) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, strings.ToLower(strings.TrimSpace(email)))
}

// List implementa user.Repository.List
func (r *PostgresUserRepository) List(ctx context.Context, tenantID string) ([]*user.User, error) {
	return queryList(ctx, r.db, "listar usuários", scanUser,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY name`, tenantID)
}

// Update implementa user.Repository.Update
func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			branch_id = $3, name = $4, email = $5, password = $6, role = $7,
			status = $8, last_login_at = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`,
		u.TenantID, u.ID, u.BranchID, u.Name, u.Email, u.Password, u.Role,
		u.Status, u.LastLoginAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return user.ErrDuplicateEmail
	}
	if err != nil {
		return dbError("atualizar usuário", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implementa user.Repository.Delete
func (r *PostgresUserRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir usuário", user.ErrUserNotFound,
		`DELETE FROM users WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// CountByTenant implementa user.Repository.CountByTenant
func (r *PostgresUserRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	return countRows(ctx, r.db, "contar usuários", `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, dbError("buscar usuário", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID, &u.TenantID, &u.BranchID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.Status, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
