package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
)

const notificationColumns = `id, tenant_id, email_enabled, email, telegram_enabled, telegram_chat_id,
	whatsapp_enabled, reminder_minutes_before, created_at, updated_at`

// PostgresNotificationRepository implementa notification.Repository usando PostgreSQL
type PostgresNotificationRepository struct {
	db database.PGXDB
}

// NewPostgresNotificationRepository cria uma nova instância de PostgresNotificationRepository
func NewPostgresNotificationRepository(db database.PGXDB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Create implementa notification.Repository.Create
func (r *PostgresNotificationRepository) Create(ctx context.Context, s *notification.Settings) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_settings (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.TenantID, s.EmailEnabled, s.Email, s.TelegramEnabled, s.TelegramChatID,
		s.WhatsAppEnabled, s.ReminderMinutesBefore, s.CreatedAt, s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return notification.ErrDuplicateSettings
	}
	if err != nil {
		return dbError("inserir configuração de notificação", err)
	}
	return nil
}

// FindByID implementa notification.Repository.FindByID
func (r *PostgresNotificationRepository) FindByID(ctx context.Context, tenantID, id string) (*notification.Settings, error) {
	return r.findOne(ctx, `SELECT `+notificationColumns+` FROM notification_settings WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByTenant implementa notification.Repository.FindByTenant
func (r *PostgresNotificationRepository) FindByTenant(ctx context.Context, tenantID string) (*notification.Settings, error) {
	return r.findOne(ctx, `SELECT `+notificationColumns+` FROM notification_settings WHERE tenant_id = $1`, tenantID)
}

// List implementa notification.Repository.List
func (r *PostgresNotificationRepository) List(ctx context.Context, tenantID string) ([]*notification.Settings, error) {
	return queryList(ctx, r.db, "listar configurações de notificação", scanNotification,
		`SELECT `+notificationColumns+` FROM notification_settings WHERE tenant_id = $1`, tenantID)
}

// Update implementa notification.Repository.Update
func (r *PostgresNotificationRepository) Update(ctx context.Context, s *notification.Settings) error {
	return execAffecting(ctx, r.db, "atualizar configuração de notificação", notification.ErrSettingsNotFound, `
		UPDATE notification_settings SET
			email_enabled = $3, email = $4, telegram_enabled = $5, telegram_chat_id = $6,
			whatsapp_enabled = $7, reminder_minutes_before = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.EmailEnabled, s.Email, s.TelegramEnabled, s.TelegramChatID,
		s.WhatsAppEnabled, s.ReminderMinutesBefore, s.UpdatedAt,
	)
}

func (r *PostgresNotificationRepository) findOne(ctx context.Context, query string, args ...any) (*notification.Settings, error) {
	s, err := scanNotification(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notification.ErrSettingsNotFound
	}
	if err != nil {
		return nil, dbError("buscar configuração de notificação", err)
	}
	return s, nil
}

func scanNotification(row rowScanner) (*notification.Settings, error) {
	s := &notification.Settings{}
	err := row.Scan(
		&s.ID, &s.TenantID, &s.EmailEnabled, &s.Email, &s.TelegramEnabled, &s.TelegramChatID,
		&s.WhatsAppEnabled, &s.ReminderMinutesBefore, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
