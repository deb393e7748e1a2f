package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

func seedClient(t *testing.T, s storage.Storage, name, phone string) *client.Client {
	t.Helper()
	c, err := client.NewClient(tenantID, "pet_clinic", name, phone, "")
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Clients.Create(context.Background(), c))
	return c
}

func TestMessagingSendDelivers(t *testing.T) {
	s := newStore(t)
	sender := &fakeSender{}
	svc := NewMessagingService(s, sender, logger.Nop())
	cl := seedClient(t, s, "Ana", "+5511999990000")

	m, err := svc.Send(context.Background(), tenantID, "user-1", cl.ID, messaging.ChannelWhatsApp, " Olá, Ana! ")
	require.NoError(t, err)
	require.Equal(t, messaging.StatusSent, m.Status)
	require.Equal(t, "SM+5511999990000", m.ExternalID)
	require.Equal(t, messaging.DirectionOutbound, m.Direction)
	require.Len(t, sender.sent, 1)
	require.Equal(t, "Olá, Ana!", sender.sent[0].body)

	history, total, err := svc.History(context.Background(), tenantID, cl.ID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, messaging.StatusSent, history[0].Status)
}

func TestMessagingProviderFailureIsRecorded(t *testing.T) {
	s := newStore(t)
	svc := NewMessagingService(s, &fakeSender{err: errors.New("número inválido")}, logger.Nop())
	cl := seedClient(t, s, "Ana", "+5511999990000")

	m, err := svc.Send(context.Background(), tenantID, "user-1", cl.ID, messaging.ChannelSMS, "Seu pedido saiu")
	require.NoError(t, err)
	require.Equal(t, messaging.StatusFailed, m.Status)
	require.Equal(t, "número inválido", m.Error)

	history, _, err := svc.History(context.Background(), tenantID, cl.ID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, messaging.StatusFailed, history[0].Status)
}

func TestMessagingWithoutSender(t *testing.T) {
	s := newStore(t)
	svc := NewMessagingService(s, nil, logger.Nop())
	cl := seedClient(t, s, "Ana", "+5511999990000")

	m, err := svc.Send(context.Background(), tenantID, "user-1", cl.ID, messaging.ChannelWhatsApp, "Oi")
	require.NoError(t, err)
	require.Equal(t, messaging.StatusFailed, m.Status)
	require.Equal(t, senderNotConfigured, m.Error)

	note, err := svc.Send(context.Background(), tenantID, "user-1", cl.ID, messaging.ChannelInternal, "Cliente prefere ligação")
	require.NoError(t, err)
	require.Equal(t, messaging.StatusSent, note.Status)
}

func TestMessagingValidation(t *testing.T) {
	s := newStore(t)
	sender := &fakeSender{}
	svc := NewMessagingService(s, sender, logger.Nop())
	noPhone := seedClient(t, s, "Bruno", "")
	ctx := context.Background()

	_, err := svc.Send(ctx, tenantID, "user-1", noPhone.ID, messaging.ChannelWhatsApp, "Oi")
	require.ErrorIs(t, err, messaging.ErrMissingRecipient)

	_, err = svc.Send(ctx, tenantID, "user-1", "ghost", messaging.ChannelWhatsApp, "Oi")
	require.ErrorIs(t, err, client.ErrClientNotFound)

	_, err = svc.Send(ctx, tenantID, "user-1", noPhone.ID, messaging.Channel("fax"), "Oi")
	require.ErrorIs(t, err, messaging.ErrInvalidChannel)

	_, err = svc.Send(ctx, tenantID, "user-1", noPhone.ID, messaging.ChannelInternal, "   ")
	require.ErrorIs(t, err, messaging.ErrEmptyBody)

	require.Empty(t, sender.sent)
	_, total, err := svc.History(ctx, tenantID, noPhone.ID, 10, 0)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestMessagingReceive(t *testing.T) {
	s := newStore(t)
	svc := NewMessagingService(s, nil, logger.Nop())
	cl := seedClient(t, s, "Ana", "+5511999990000")
	ctx := context.Background()

	m, err := svc.Receive(ctx, tenantID, cl.ID, messaging.ChannelWhatsApp, "Qual o horário?", "SMabc")
	require.NoError(t, err)
	require.Equal(t, messaging.DirectionInbound, m.Direction)
	require.Equal(t, messaging.StatusReceived, m.Status)

	_, err = svc.Receive(ctx, tenantID, "ghost", messaging.ChannelWhatsApp, "Oi", "")
	require.ErrorIs(t, err, client.ErrClientNotFound)

	_, _, err = svc.History(ctx, tenantID, "ghost", 10, 0)
	require.ErrorIs(t, err, client.ErrClientNotFound)
}
