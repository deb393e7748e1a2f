package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

type fakeTwilio struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM0001"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSenderWhatsApp(t *testing.T) {
	api := &fakeTwilio{}
	s := newTwilioSender(api, "whatsapp:+5511900000000", "+5511911111111", logger.Nop())

	sid, err := s.Send(context.Background(), messaging.ChannelWhatsApp, " +5511988887777 ", "Seu pet está pronto")
	require.NoError(t, err)
	require.Equal(t, "SM0001", sid)

	require.Len(t, api.params, 1)
	require.Equal(t, "whatsapp:+5511988887777", *api.params[0].To)
	require.Equal(t, "whatsapp:+5511900000000", *api.params[0].From)
	require.Equal(t, "Seu pet está pronto", *api.params[0].Body)
}

func TestTwilioSenderSMS(t *testing.T) {
	api := &fakeTwilio{}
	s := newTwilioSender(api, "", "+5511911111111", logger.Nop())

	_, err := s.Send(context.Background(), messaging.ChannelSMS, "+5511988887777", "oi")
	require.NoError(t, err)
	require.Equal(t, "+5511988887777", *api.params[0].To)
	require.Equal(t, "+5511911111111", *api.params[0].From)

	_, err = s.Send(context.Background(), messaging.ChannelWhatsApp, "+5511988887777", "oi")
	require.ErrorIs(t, err, ErrMissingSender)
}

func TestTwilioSenderRejects(t *testing.T) {
	api := &fakeTwilio{}
	s := newTwilioSender(api, "+1", "+2", logger.Nop())

	_, err := s.Send(context.Background(), messaging.ChannelInternal, "+55", "oi")
	require.ErrorIs(t, err, ErrUnsupportedChannel)

	_, err = s.Send(context.Background(), messaging.ChannelSMS, "  ", "oi")
	require.ErrorIs(t, err, ErrEmptyRecipient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Send(ctx, messaging.ChannelSMS, "+55", "oi")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, api.params)

	api.err = errors.New("21211 invalid number")
	_, err = s.Send(context.Background(), messaging.ChannelSMS, "+55", "oi")
	require.ErrorContains(t, err, "21211")
}

type fakeBot struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeBot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: len(f.sent)}, nil
}

func TestTelegramNotifier(t *testing.T) {
	fb := &fakeBot{}
	n := &TelegramNotifier{bot: fb, log: logger.Nop()}

	require.NoError(t, n.Notify(context.Background(), " 123456 ", "Lembrete: consulta às 14:00"))
	require.Len(t, fb.sent, 1)
	require.Equal(t, "123456", fb.sent[0].ChatID)
	require.Equal(t, "Lembrete: consulta às 14:00", fb.sent[0].Text)

	require.ErrorIs(t, n.Notify(context.Background(), "", "x"), ErrEmptyChatID)

	fb.err = errors.New("chat not found")
	require.ErrorContains(t, n.Notify(context.Background(), "1", "x"), "chat not found")
}

func TestNewTelegramNotifierSkipsNetwork(t *testing.T) {
	n, err := NewTelegramNotifier("123:abc", logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, n)
}
