package service

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var (
	// ErrTelegramUnavailable indica que o bot não foi configurado no servidor
	ErrTelegramUnavailable = fmt.Errorf("%w: bot do Telegram não configurado", notification.ErrTelegramDisabled)

	ErrNotificationFailed = shared.BusinessRule("notification_failed", "falha ao enviar a notificação")
)

// NotificationService envia a mensagem de teste das preferências de notificação
type NotificationService struct {
	store    storage.Storage
	notifier ChatNotifier
	log      logger.Logger
}

// NewNotificationService cria o serviço; notifier nulo desativa o teste
func NewNotificationService(store storage.Storage, notifier ChatNotifier, log logger.Logger) *NotificationService {
	return &NotificationService{store: store, notifier: notifier, log: log}
}

// SendTest envia uma mensagem de teste para o chat configurado
func (s *NotificationService) SendTest(ctx context.Context, tenantID, id string) (*notification.Settings, error) {
	settings, err := s.store.Repositories().NotificationSettings.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !settings.TelegramEnabled {
		return nil, notification.ErrTelegramDisabled
	}
	if s.notifier == nil {
		return nil, ErrTelegramUnavailable
	}
	if err := s.notifier.Notify(ctx, settings.TelegramChatID, "Teste de notificação: tudo certo por aqui!"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	s.log.Info("Notificação de teste enviada", "tenant_id", tenantID)
	return settings, nil
}
