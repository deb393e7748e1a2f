package service

import (
	"context"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

const senderNotConfigured = "canal de envio não configurado"

// MessagingService registra o atendimento por cliente e entrega as mensagens de saída
type MessagingService struct {
	store  storage.Storage
	sender MessageSender
	log    logger.Logger
}

// NewMessagingService cria o serviço; sender nulo registra as mensagens como falhas de envio
func NewMessagingService(store storage.Storage, sender MessageSender, log logger.Logger) *MessagingService {
	return &MessagingService{store: store, sender: sender, log: log}
}

// Send grava a mensagem, tenta entregá-la e grava o resultado. Falha do provedor
// não é erro da operação: a mensagem volta com status failed e o motivo.
func (s *MessagingService) Send(ctx context.Context, tenantID, userID, clientID string, channel messaging.Channel, body string) (*messaging.Message, error) {
	repos := s.store.Repositories()
	cl, err := repos.Clients.FindByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	m, err := messaging.NewOutbound(tenantID, cl.ID, userID, channel, body)
	if err != nil {
		return nil, err
	}
	if m.NeedsDelivery() && cl.Phone == "" {
		return nil, messaging.ErrMissingRecipient
	}
	if err := repos.Messages.Save(ctx, m); err != nil {
		return nil, err
	}
	if !m.NeedsDelivery() {
		return m, nil
	}

	if s.sender == nil {
		m.MarkFailed(senderNotConfigured)
	} else if externalID, err := s.sender.Send(ctx, channel, cl.Phone, m.Body); err != nil {
		s.log.Warn("Mensagem não entregue", "tenant_id", tenantID, "message_id", m.ID, "error", err)
		m.MarkFailed(err.Error())
	} else {
		m.MarkSent(externalID)
	}

	if err := repos.Messages.UpdateDelivery(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Receive registra uma mensagem recebida do cliente
func (s *MessagingService) Receive(ctx context.Context, tenantID, clientID string, channel messaging.Channel, body, externalID string) (*messaging.Message, error) {
	repos := s.store.Repositories()
	if _, err := repos.Clients.FindByID(ctx, tenantID, clientID); err != nil {
		return nil, err
	}
	m, err := messaging.NewInbound(tenantID, clientID, channel, body, externalID)
	if err != nil {
		return nil, err
	}
	if err := repos.Messages.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// History lista a conversa com o cliente, das mais recentes para as mais antigas
func (s *MessagingService) History(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*messaging.Message, int, error) {
	repos := s.store.Repositories()
	if _, err := repos.Clients.FindByID(ctx, tenantID, clientID); err != nil {
		return nil, 0, err
	}
	messages, err := repos.Messages.ListByClient(ctx, tenantID, clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := repos.Messages.CountByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
