package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const entryColumns = `id, tenant_id, business_category, kind, amount, description, notes, due_date,
	payment_date, status, payment_method, payment_proof, is_boleto, boleto_code, is_installment,
	current_installment, total_installments, created_at, updated_at`

// PostgresFinanceRepository implementa finance.Repository usando PostgreSQL
type PostgresFinanceRepository struct {
	db database.PGXDB
}

// NewPostgresFinanceRepository cria uma nova instância de PostgresFinanceRepository
func NewPostgresFinanceRepository(db database.PGXDB) *PostgresFinanceRepository {
	return &PostgresFinanceRepository{db: db}
}

// Create implementa finance.Repository.Create
func (r *PostgresFinanceRepository) Create(ctx context.Context, e *finance.Entry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO financial_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		e.ID, e.TenantID, e.BusinessCategory, e.Kind, e.Amount, e.Description, e.Notes, e.DueDate,
		e.PaymentDate, e.Status, e.PaymentMethod, e.PaymentProof, e.IsBoleto, e.BoletoCode, e.IsInstallment,
		e.CurrentInstallment, e.TotalInstallments, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir lançamento", err)
	}
	return nil
}

// FindByID implementa finance.Repository.FindByID
func (r *PostgresFinanceRepository) FindByID(ctx context.Context, tenantID, id string) (*finance.Entry, error) {
	e, err := scanEntry(r.db.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM financial_entries WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, finance.ErrEntryNotFound
	}
	if err != nil {
		return nil, dbError("buscar lançamento", err)
	}
	return e, nil
}

// List implementa finance.Repository.List
func (r *PostgresFinanceRepository) List(ctx context.Context, tenantID string, f finance.ListFilter) ([]*finance.Entry, error) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if f.Kind != "" {
		args = append(args, f.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.DueFrom != nil {
		args = append(args, *f.DueFrom)
		conds = append(conds, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if f.DueTo != nil {
		args = append(args, *f.DueTo)
		conds = append(conds, fmt.Sprintf("due_date <= $%d", len(args)))
	}
	query, args := limitOffset(
		`SELECT `+entryColumns+` FROM financial_entries WHERE `+strings.Join(conds, " AND ")+
			` ORDER BY due_date, created_at`,
		args, f.Limit, f.Offset)
	return queryList(ctx, r.db, "listar lançamentos", scanEntry, query, args...)
}

// Update implementa finance.Repository.Update
func (r *PostgresFinanceRepository) Update(ctx context.Context, e *finance.Entry) error {
	return execAffecting(ctx, r.db, "atualizar lançamento", finance.ErrEntryNotFound, `
		UPDATE financial_entries SET
			business_category = $3, kind = $4, amount = $5, description = $6, notes = $7,
			due_date = $8, payment_date = $9, status = $10, payment_method = $11,
			payment_proof = $12, is_boleto = $13, boleto_code = $14, is_installment = $15,
			current_installment = $16, total_installments = $17, updated_at = $18
		WHERE tenant_id = $1 AND id = $2`,
		e.TenantID, e.ID, e.BusinessCategory, e.Kind, e.Amount, e.Description, e.Notes,
		e.DueDate, e.PaymentDate, e.Status, e.PaymentMethod,
		e.PaymentProof, e.IsBoleto, e.BoletoCode, e.IsInstallment,
		e.CurrentInstallment, e.TotalInstallments, e.UpdatedAt,
	)
}

// Delete implementa finance.Repository.Delete
func (r *PostgresFinanceRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir lançamento", finance.ErrEntryNotFound,
		`DELETE FROM financial_entries WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanEntry(row rowScanner) (*finance.Entry, error) {
	e := &finance.Entry{}
	err := row.Scan(
		&e.ID, &e.TenantID, &e.BusinessCategory, &e.Kind, &e.Amount, &e.Description, &e.Notes, &e.DueDate,
		&e.PaymentDate, &e.Status, &e.PaymentMethod, &e.PaymentProof, &e.IsBoleto, &e.BoletoCode, &e.IsInstallment,
		&e.CurrentInstallment, &e.TotalInstallments, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
