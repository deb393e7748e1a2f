package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const appointmentColumns = `id, tenant_id, business_category, client_id, client_name, client_phone, title,
	description, professional, start_time, end_time, status, reminder_at, reminder_sent_at,
	created_at, updated_at`

// PostgresAppointmentRepository implementa appointment.Repository usando PostgreSQL
type PostgresAppointmentRepository struct {
	db database.PGXDB
}

// NewPostgresAppointmentRepository cria uma nova instância de PostgresAppointmentRepository
func NewPostgresAppointmentRepository(db database.PGXDB) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

// Create implementa appointment.Repository.Create
func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		a.ID, a.TenantID, a.BusinessCategory, a.ClientID, a.ClientName, a.ClientPhone, a.Title,
		a.Description, a.Professional, a.StartTime, a.EndTime, a.Status, a.ReminderAt, a.ReminderSentAt,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return dbError("inserir agendamento", err)
	}
	return nil
}

// FindByID implementa appointment.Repository.FindByID
func (r *PostgresAppointmentRepository) FindByID(ctx context.Context, tenantID, id string) (*appointment.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, dbError("buscar agendamento", err)
	}
	return a, nil
}

// List implementa appointment.Repository.List
func (r *PostgresAppointmentRepository) List(ctx context.Context, tenantID string, from, to *time.Time) ([]*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE tenant_id = $1`
	args := []any{tenantID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	return queryList(ctx, r.db, "listar agendamentos", scanAppointment, query+" ORDER BY start_time", args...)
}

// PendingReminders implementa appointment.Repository.PendingReminders
func (r *PostgresAppointmentRepository) PendingReminders(ctx context.Context, tenantID string, now time.Time) ([]*appointment.Appointment, error) {
	return queryList(ctx, r.db, "listar lembretes pendentes", scanAppointment, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE tenant_id = $1
			AND reminder_sent_at IS NULL
			AND status IN ($2, $3)
			AND reminder_at <= $4
			AND start_time > $4
		ORDER BY start_time`,
		tenantID, appointment.StatusScheduled, appointment.StatusConfirmed, now)
}

// Update implementa appointment.Repository.Update
func (r *PostgresAppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	return execAffecting(ctx, r.db, "atualizar agendamento", appointment.ErrAppointmentNotFound, `
		UPDATE appointments SET
			business_category = $3, client_id = $4, client_name = $5, client_phone = $6,
			title = $7, description = $8, professional = $9, start_time = $10, end_time = $11,
			status = $12, reminder_at = $13, reminder_sent_at = $14, updated_at = $15
		WHERE tenant_id = $1 AND id = $2`,
		a.TenantID, a.ID, a.BusinessCategory, a.ClientID, a.ClientName, a.ClientPhone,
		a.Title, a.Description, a.Professional, a.StartTime, a.EndTime,
		a.Status, a.ReminderAt, a.ReminderSentAt, a.UpdatedAt,
	)
}

// Delete implementa appointment.Repository.Delete
func (r *PostgresAppointmentRepository) Delete(ctx context.Context, tenantID, id string) error {
	return execAffecting(ctx, r.db, "excluir agendamento", appointment.ErrAppointmentNotFound,
		`DELETE FROM appointments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	a := &appointment.Appointment{}
	err := row.Scan(
		&a.ID, &a.TenantID, &a.BusinessCategory, &a.ClientID, &a.ClientName, &a.ClientPhone, &a.Title,
		&a.Description, &a.Professional, &a.StartTime, &a.EndTime, &a.Status, &a.ReminderAt, &a.ReminderSentAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
