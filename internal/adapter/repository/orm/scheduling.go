package orm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
)

type appointmentRepo struct{ db *gorm.DB }

func (r *appointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	return create(ctx, r.db, a, nil)
}

func (r *appointmentRepo) FindByID(ctx context.Context, tenantID, id string) (*appointment.Appointment, error) {
	return first[appointment.Appointment](ctx, r.db, appointment.ErrAppointmentNotFound, byTenantAndID, tenantID, id)
}

func (r *appointmentRepo) List(ctx context.Context, tenantID string, from, to *time.Time) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if from != nil {
		q = q.Where("start_time >= ?", *from)
	}
	if to != nil {
		q = q.Where("start_time <= ?", *to)
	}
	var list []*appointment.Appointment
	if err := q.Order("start_time").Find(&list).Error; err != nil {
		return nil, wrap("listar agendamentos", err)
	}
	return list, nil
}

func (r *appointmentRepo) PendingReminders(ctx context.Context, tenantID string, now time.Time) ([]*appointment.Appointment, error) {
	var list []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reminder_sent_at IS NULL", tenantID).
		Where("status IN ?", []appointment.Status{appointment.StatusScheduled, appointment.StatusConfirmed}).
		Where("reminder_at <= ? AND start_time > ?", now, now).
		Order("start_time").Find(&list).Error
	if err != nil {
		return nil, wrap("listar lembretes pendentes", err)
	}
	return list, nil
}

func (r *appointmentRepo) Update(ctx context.Context, a *appointment.Appointment) error {
	return save(ctx, r.db, a, a.TenantID, a.ID, appointment.ErrAppointmentNotFound, nil)
}

func (r *appointmentRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[appointment.Appointment](ctx, r.db, tenantID, id, appointment.ErrAppointmentNotFound)
}

type integrationRepo struct{ db *gorm.DB }

func (r *integrationRepo) Create(ctx context.Context, i *integration.Integration) error {
	return create(ctx, r.db, i, integration.ErrDuplicateProvider)
}

func (r *integrationRepo) FindByID(ctx context.Context, tenantID, id string) (*integration.Integration, error) {
	return first[integration.Integration](ctx, r.db, integration.ErrIntegrationNotFound, byTenantAndID, tenantID, id)
}

func (r *integrationRepo) List(ctx context.Context, tenantID string) ([]*integration.Integration, error) {
	var list []*integration.Integration
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("provider").Find(&list).Error; err != nil {
		return nil, wrap("listar integrações", err)
	}
	return list, nil
}

func (r *integrationRepo) Update(ctx context.Context, i *integration.Integration) error {
	return save(ctx, r.db, i, i.TenantID, i.ID, integration.ErrIntegrationNotFound, integration.ErrDuplicateProvider)
}

type notificationRepo struct{ db *gorm.DB }

func (r *notificationRepo) Create(ctx context.Context, s *notification.Settings) error {
	return create(ctx, r.db, s, notification.ErrDuplicateSettings)
}

func (r *notificationRepo) FindByID(ctx context.Context, tenantID, id string) (*notification.Settings, error) {
	return first[notification.Settings](ctx, r.db, notification.ErrSettingsNotFound, byTenantAndID, tenantID, id)
}

func (r *notificationRepo) FindByTenant(ctx context.Context, tenantID string) (*notification.Settings, error) {
	return first[notification.Settings](ctx, r.db, notification.ErrSettingsNotFound, "tenant_id = ?", tenantID)
}

func (r *notificationRepo) List(ctx context.Context, tenantID string) ([]*notification.Settings, error) {
	var list []*notification.Settings
	if err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&list).Error; err != nil {
		return nil, wrap("listar configurações de notificação", err)
	}
	return list, nil
}

func (r *notificationRepo) Update(ctx context.Context, s *notification.Settings) error {
	return save(ctx, r.db, s, s.TenantID, s.ID, notification.ErrSettingsNotFound, nil)
}

type transferRepo struct{ db *gorm.DB }

func (r *transferRepo) Create(ctx context.Context, t *transfer.Transfer) error {
	return create(ctx, r.db, t, nil)
}

func (r *transferRepo) FindByID(ctx context.Context, tenantID, id string) (*transfer.Transfer, error) {
	return first[transfer.Transfer](ctx, r.db, transfer.ErrTransferNotFound, byTenantAndID, tenantID, id)
}

func (r *transferRepo) List(ctx context.Context, tenantID string, status transfer.Status) ([]*transfer.Transfer, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []*transfer.Transfer
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, wrap("listar transferências", err)
	}
	return list, nil
}

func (r *transferRepo) Update(ctx context.Context, t *transfer.Transfer) error {
	return save(ctx, r.db, t, t.TenantID, t.ID, transfer.ErrTransferNotFound, nil)
}

func (r *transferRepo) Delete(ctx context.Context, tenantID, id string) error {
	return remove[transfer.Transfer](ctx, r.db, tenantID, id, transfer.ErrTransferNotFound)
}

type messageRepo struct{ db *gorm.DB }

func (r *messageRepo) Save(ctx context.Context, m *messaging.Message) error {
	return create(ctx, r.db, m, nil)
}

func (r *messageRepo) UpdateDelivery(ctx context.Context, m *messaging.Message) error {
	res := r.db.WithContext(ctx).Model(&messaging.Message{}).Where(byTenantAndID, m.TenantID, m.ID).
		Updates(map[string]any{
			"status":      m.Status,
			"external_id": m.ExternalID,
			"error":       m.Error,
			"updated_at":  m.UpdatedAt,
		})
	if res.Error != nil {
		return wrap("atualizar entrega da mensagem", res.Error)
	}
	if res.RowsAffected == 0 {
		return messaging.ErrMessageNotFound
	}
	return nil
}

func (r *messageRepo) ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*messaging.Message, error) {
	var list []*messaging.Message
	q := r.db.WithContext(ctx).Where("tenant_id = ? AND client_id = ?", tenantID, clientID)
	if err := paged(q, limit, offset).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, wrap("listar mensagens", err)
	}
	return list, nil
}

func (r *messageRepo) CountByClient(ctx context.Context, tenantID, clientID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&messaging.Message{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).Count(&n).Error
	if err != nil {
		return 0, wrap("contar mensagens", err)
	}
	return int(n), nil
}
