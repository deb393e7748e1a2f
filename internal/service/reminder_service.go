package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// ReminderResult é o desfecho do lembrete de um agendamento
type ReminderResult struct {
	AppointmentID string   `json:"appointment_id"`
	Channels      []string `json:"channels"`
	Sent          bool     `json:"sent"`
	Error         string   `json:"error,omitempty"`
}

// DispatchReport resume um disparo de lembretes
type DispatchReport struct {
	Due     int              `json:"due"`
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Skipped int              `json:"skipped"`
	Results []ReminderResult `json:"results"`
}

// ReminderService envia os lembretes de agendamento quando acionado; não há agendador
type ReminderService struct {
	store    storage.Storage
	notifier ChatNotifier
	sender   MessageSender
	loc      *time.Location
	log      logger.Logger
	now      Clock
}

// NewReminderService cria o serviço; canais nulos são ignorados
func NewReminderService(store storage.Storage, notifier ChatNotifier, sender MessageSender, loc *time.Location, log logger.Logger, clock Clock) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{store: store, notifier: notifier, sender: sender, loc: loc, log: log, now: clockOrNow(clock)}
}

// Due lista os agendamentos cujo lembrete já venceu e não foi enviado
func (s *ReminderService) Due(ctx context.Context, tenantID string) ([]*appointment.Appointment, error) {
	return s.store.Repositories().Appointments.PendingReminders(ctx, tenantID, s.now())
}

// Dispatch envia cada lembrete pendente pelos canais ativos do tenant.
// Um lembrete só é marcado como enviado quando ao menos um canal aceita.
func (s *ReminderService) Dispatch(ctx context.Context, tenantID string) (*DispatchReport, error) {
	now := s.now()
	repos := s.store.Repositories()

	settings, err := repos.NotificationSettings.FindByTenant(ctx, tenantID)
	if errors.Is(err, notification.ErrSettingsNotFound) {
		settings = notification.NewSettings(tenantID)
	} else if err != nil {
		return nil, err
	}

	due, err := repos.Appointments.PendingReminders(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	report := &DispatchReport{Due: len(due), Results: make([]ReminderResult, 0, len(due))}
	for _, a := range due {
		res := s.deliver(ctx, settings, a)
		switch {
		case res.Sent:
			a.MarkReminderSent(now)
			if err := repos.Appointments.Update(ctx, a); err != nil {
				return nil, err
			}
			report.Sent++
		case res.Error != "":
			report.Failed++
		default:
			report.Skipped++
		}
		report.Results = append(report.Results, res)
	}

	s.log.Info("Lembretes processados",
		"tenant_id", tenantID, "due", report.Due, "sent", report.Sent, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}

func (s *ReminderService) deliver(ctx context.Context, settings *notification.Settings, a *appointment.Appointment) ReminderResult {
	res := ReminderResult{AppointmentID: a.ID, Channels: []string{}}
	text := ReminderText(a, s.loc)
	var errs []error

	if settings.TelegramEnabled && s.notifier != nil {
		if err := s.notifier.Notify(ctx, settings.TelegramChatID, text); err != nil {
			errs = append(errs, err)
		} else {
			res.Channels = append(res.Channels, "telegram")
		}
	}
	if settings.WhatsAppEnabled && s.sender != nil && a.ClientPhone != "" {
		if _, err := s.sender.Send(ctx, messaging.ChannelWhatsApp, a.ClientPhone, text); err != nil {
			errs = append(errs, err)
		} else {
			res.Channels = append(res.Channels, "whatsapp")
		}
	}

	res.Sent = len(res.Channels) > 0
	if !res.Sent && len(errs) > 0 {
		res.Error = errors.Join(errs...).Error()
		s.log.Warn("Lembrete não enviado", "appointment_id", a.ID, "error", res.Error)
	}
	return res
}

// ReminderText monta o texto do lembrete no fuso do negócio
func ReminderText(a *appointment.Appointment, loc *time.Location) string {
	start := a.StartTime.In(loc)
	return fmt.Sprintf("Lembrete: %s com %s em %s às %s",
		a.Title, a.ClientName, start.Format("02/01/2006"), start.Format("15:04"))
}
