package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var consultation = time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)

func seedAppointment(t *testing.T, s storage.Storage, title, phone string, start time.Time) *appointment.Appointment {
	t.Helper()
	a, err := appointment.NewAppointment(tenantID, "pet_clinic", "", "Ana", title, start, start.Add(30*time.Minute))
	require.NoError(t, err)
	a.ClientPhone = phone
	require.NoError(t, s.Repositories().Appointments.Create(context.Background(), a))
	return a
}

func seedSettings(t *testing.T, s storage.Storage, telegram, whatsapp bool) {
	t.Helper()
	st := notification.NewSettings(tenantID)
	chat := ""
	if telegram {
		chat = "12345"
	}
	require.NoError(t, st.Apply(false, "", telegram, chat, whatsapp, notification.DefaultReminderMinutes))
	require.NoError(t, s.Repositories().NotificationSettings.Create(context.Background(), st))
}

func TestReminderText(t *testing.T) {
	a, err := appointment.NewAppointment(tenantID, "pet_clinic", "", "Ana", "Vacina do Thor", consultation, time.Time{})
	require.NoError(t, err)

	saoPaulo := time.FixedZone("BRT", -3*60*60)
	require.Equal(t, "Lembrete: Vacina do Thor com Ana em 02/06/2025 às 14:30", ReminderText(a, saoPaulo))
	require.Equal(t, consultation.Add(-time.Hour), a.ReminderAt)
}

func TestDispatchSendsThroughEnabledChannels(t *testing.T) {
	s := newStore(t)
	clock := newClock(consultation.Add(-50 * time.Minute))
	notifier := &fakeNotifier{}
	sender := &fakeSender{}
	svc := NewReminderService(s, notifier, sender, time.UTC, logger.Nop(), clock.Now)
	ctx := context.Background()

	seedSettings(t, s, true, true)
	due := seedAppointment(t, s, "Vacina", "+5511999990000", consultation)
	seedAppointment(t, s, "Banho", "", consultation.Add(3*time.Hour))

	pending, err := svc.Due(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, due.ID, pending[0].ID)

	report, err := svc.Dispatch(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Due)
	require.Equal(t, 1, report.Sent)
	require.ElementsMatch(t, []string{"telegram", "whatsapp"}, report.Results[0].Channels)
	require.Equal(t, []string{"12345"}, notifier.chats)
	require.Len(t, sender.sent, 1)
	require.Equal(t, messaging.ChannelWhatsApp, sender.sent[0].channel)

	stored, err := s.Repositories().Appointments.FindByID(ctx, tenantID, due.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReminderSentAt)

	again, err := svc.Dispatch(ctx, tenantID)
	require.NoError(t, err)
	require.Zero(t, again.Due, "lembrete não é reenviado")
}

func TestDispatchWithoutChannelsSkips(t *testing.T) {
	s := newStore(t)
	clock := newClock(consultation.Add(-30 * time.Minute))
	svc := NewReminderService(s, &fakeNotifier{}, &fakeSender{}, time.UTC, logger.Nop(), clock.Now)
	a := seedAppointment(t, s, "Vacina", "+5511999990000", consultation)

	report, err := svc.Dispatch(context.Background(), tenantID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Skipped)
	require.Zero(t, report.Sent)

	stored, err := s.Repositories().Appointments.FindByID(context.Background(), tenantID, a.ID)
	require.NoError(t, err)
	require.Nil(t, stored.ReminderSentAt, "sem canal o lembrete continua pendente")
}

func TestDispatchPartialFailureStillCountsAsSent(t *testing.T) {
	s := newStore(t)
	clock := newClock(consultation.Add(-10 * time.Minute))
	notifier := &fakeNotifier{err: errors.New("chat not found")}
	svc := NewReminderService(s, notifier, &fakeSender{}, time.UTC, logger.Nop(), clock.Now)
	seedSettings(t, s, true, true)
	seedAppointment(t, s, "Vacina", "+5511999990000", consultation)

	report, err := svc.Dispatch(context.Background(), tenantID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Sent)
	require.Equal(t, []string{"whatsapp"}, report.Results[0].Channels)
}

func TestDispatchAllChannelsFail(t *testing.T) {
	s := newStore(t)
	clock := newClock(consultation.Add(-10 * time.Minute))
	svc := NewReminderService(s, &fakeNotifier{err: errors.New("chat not found")}, nil, time.UTC, logger.Nop(), clock.Now)
	seedSettings(t, s, true, true)
	a := seedAppointment(t, s, "Vacina", "+5511999990000", consultation)

	report, err := svc.Dispatch(context.Background(), tenantID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.Contains(t, report.Results[0].Error, "chat not found")

	stored, err := s.Repositories().Appointments.FindByID(context.Background(), tenantID, a.ID)
	require.NoError(t, err)
	require.Nil(t, stored.ReminderSentAt)
}

func TestDispatchIgnoresStartedAndCancelled(t *testing.T) {
	s := newStore(t)
	clock := newClock(consultation.Add(time.Minute))
	svc := NewReminderService(s, &fakeNotifier{}, nil, time.UTC, logger.Nop(), clock.Now)
	seedSettings(t, s, true, false)

	seedAppointment(t, s, "Já começou", "", consultation)
	cancelled := seedAppointment(t, s, "Cancelado", "", consultation.Add(30*time.Minute))
	require.NoError(t, cancelled.Reschedule(cancelled.Title, cancelled.ClientName, "", cancelled.StartTime, cancelled.EndTime, appointment.StatusCancelled))
	require.NoError(t, s.Repositories().Appointments.Update(context.Background(), cancelled))

	report, err := svc.Dispatch(context.Background(), tenantID)
	require.NoError(t, err)
	require.Zero(t, report.Due)
}
