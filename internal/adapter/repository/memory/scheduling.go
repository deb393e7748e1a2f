package memory

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
)

type appointmentRepo struct{ base }

func (r *appointmentRepo) s() scoped[appointment.Appointment] {
	return scoped[appointment.Appointment]{
		base:     r.base,
		table:    func(d *dataset) table[appointment.Appointment] { return d.appointments },
		key:      func(a *appointment.Appointment) (string, string) { return a.TenantID, a.ID },
		notFound: appointment.ErrAppointmentNotFound,
	}
}

func byStart(a, b *appointment.Appointment) bool { return a.StartTime.Before(b.StartTime) }

func (r *appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	return r.s().insert(a, nil)
}

func (r *appointmentRepo) FindByID(_ context.Context, tenantID, id string) (*appointment.Appointment, error) {
	return r.s().find(tenantID, id)
}

func (r *appointmentRepo) List(_ context.Context, tenantID string, from, to *time.Time) ([]*appointment.Appointment, error) {
	return r.s().list(tenantID, func(a *appointment.Appointment) bool {
		if from != nil && a.StartTime.Before(*from) {
			return false
		}
		if to != nil && a.StartTime.After(*to) {
			return false
		}
		return true
	}, byStart), nil
}

func (r *appointmentRepo) PendingReminders(_ context.Context, tenantID string, now time.Time) ([]*appointment.Appointment, error) {
	return r.s().list(tenantID, func(a *appointment.Appointment) bool {
		return a.NeedsReminder(now)
	}, byStart), nil
}

func (r *appointmentRepo) Update(_ context.Context, a *appointment.Appointment) error {
	return r.s().replace(a, nil)
}

func (r *appointmentRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}

type integrationRepo struct{ base }

func (r *integrationRepo) s() scoped[integration.Integration] {
	return scoped[integration.Integration]{
		base:     r.base,
		table:    func(d *dataset) table[integration.Integration] { return d.integrations },
		key:      func(i *integration.Integration) (string, string) { return i.TenantID, i.ID },
		notFound: integration.ErrIntegrationNotFound,
	}
}

func (r *integrationRepo) Create(_ context.Context, i *integration.Integration) error {
	return r.s().insert(i, func(d *dataset) error {
		for _, other := range d.integrations.rows {
			if other.TenantID == i.TenantID && other.Provider == i.Provider {
				return integration.ErrDuplicateProvider
			}
		}
		return nil
	})
}

func (r *integrationRepo) FindByID(_ context.Context, tenantID, id string) (*integration.Integration, error) {
	return r.s().find(tenantID, id)
}

func (r *integrationRepo) List(_ context.Context, tenantID string) ([]*integration.Integration, error) {
	return r.s().list(tenantID, nil, func(a, b *integration.Integration) bool {
		return a.Provider < b.Provider
	}), nil
}

func (r *integrationRepo) Update(_ context.Context, i *integration.Integration) error {
	return r.s().replace(i, nil)
}

type notificationRepo struct{ base }

func (r *notificationRepo) s() scoped[notification.Settings] {
	return scoped[notification.Settings]{
		base:     r.base,
		table:    func(d *dataset) table[notification.Settings] { return d.notifications },
		key:      func(s *notification.Settings) (string, string) { return s.TenantID, s.ID },
		notFound: notification.ErrSettingsNotFound,
	}
}

func (r *notificationRepo) Create(_ context.Context, s *notification.Settings) error {
	return r.s().insert(s, func(d *dataset) error {
		for _, other := range d.notifications.rows {
			if other.TenantID == s.TenantID {
				return notification.ErrDuplicateSettings
			}
		}
		return nil
	})
}

func (r *notificationRepo) FindByID(_ context.Context, tenantID, id string) (*notification.Settings, error) {
	return r.s().find(tenantID, id)
}

func (r *notificationRepo) FindByTenant(_ context.Context, tenantID string) (*notification.Settings, error) {
	found := r.s().list(tenantID, nil, nil)
	if len(found) == 0 {
		return nil, notification.ErrSettingsNotFound
	}
	return found[0], nil
}

func (r *notificationRepo) List(_ context.Context, tenantID string) ([]*notification.Settings, error) {
	return r.s().list(tenantID, nil, nil), nil
}

func (r *notificationRepo) Update(_ context.Context, s *notification.Settings) error {
	return r.s().replace(s, nil)
}

type transferRepo struct{ base }

func (r *transferRepo) s() scoped[transfer.Transfer] {
	return scoped[transfer.Transfer]{
		base:     r.base,
		table:    func(d *dataset) table[transfer.Transfer] { return d.transfers },
		key:      func(t *transfer.Transfer) (string, string) { return t.TenantID, t.ID },
		notFound: transfer.ErrTransferNotFound,
	}
}

func (r *transferRepo) Create(_ context.Context, t *transfer.Transfer) error {
	return r.s().insert(t, nil)
}

func (r *transferRepo) FindByID(_ context.Context, tenantID, id string) (*transfer.Transfer, error) {
	return r.s().find(tenantID, id)
}

func (r *transferRepo) List(_ context.Context, tenantID string, status transfer.Status) ([]*transfer.Transfer, error) {
	return r.s().list(tenantID,
		func(t *transfer.Transfer) bool { return status == "" || t.Status == status },
		func(a, b *transfer.Transfer) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (r *transferRepo) Update(_ context.Context, t *transfer.Transfer) error {
	return r.s().replace(t, nil)
}

func (r *transferRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.s().delete(tenantID, id)
}

type messageRepo struct{ base }

func (r *messageRepo) s() scoped[messaging.Message] {
	return scoped[messaging.Message]{
		base:     r.base,
		table:    func(d *dataset) table[messaging.Message] { return d.messages },
		key:      func(m *messaging.Message) (string, string) { return m.TenantID, m.ID },
		notFound: messaging.ErrMessageNotFound,
	}
}

func (r *messageRepo) Save(_ context.Context, m *messaging.Message) error {
	return r.s().insert(m, nil)
}

func (r *messageRepo) UpdateDelivery(_ context.Context, m *messaging.Message) error {
	return r.s().replace(m, nil)
}

func (r *messageRepo) byClient(tenantID, clientID string) []*messaging.Message {
	return r.s().list(tenantID,
		func(m *messaging.Message) bool { return m.ClientID == clientID },
		func(a, b *messaging.Message) bool { return a.CreatedAt.After(b.CreatedAt) })
}

func (r *messageRepo) ListByClient(_ context.Context, tenantID, clientID string, limit, offset int) ([]*messaging.Message, error) {
	return paginate(r.byClient(tenantID, clientID), limit, offset), nil
}

func (r *messageRepo) CountByClient(_ context.Context, tenantID, clientID string) (int, error) {
	return len(r.byClient(tenantID, clientID)), nil
}
