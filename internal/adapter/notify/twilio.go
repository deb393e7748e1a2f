// Package notify implementa os canais de saída: WhatsApp e SMS via Twilio
// e avisos ao dono do negócio via bot do Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/hugohenrick/erp-multinegocio/internal/config"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var (
	ErrUnsupportedChannel = errors.New("canal não suportado pelo Twilio")
	ErrMissingSender      = errors.New("número de origem não configurado para o canal")
	ErrEmptyRecipient     = errors.New("destinatário sem telefone")
)

// messageCreator é a parte da API do Twilio usada aqui
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender envia mensagens de WhatsApp e SMS pela API do Twilio
type TwilioSender struct {
	api          messageCreator
	whatsAppFrom string
	smsFrom      string
	log          logger.Logger
}

// NewTwilioSender cria o remetente a partir das credenciais da configuração
func NewTwilioSender(cfg config.TwilioConfig, log logger.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg.WhatsAppFrom, cfg.SMSFrom, log)
}

func newTwilioSender(api messageCreator, whatsAppFrom, smsFrom string, log logger.Logger) *TwilioSender {
	return &TwilioSender{
		api:          api,
		whatsAppFrom: strings.TrimPrefix(whatsAppFrom, "whatsapp:"),
		smsFrom:      smsFrom,
		log:          log,
	}
}

// Send entrega body ao telefone to e devolve o SID da mensagem no Twilio.
// A chamada ao Twilio não aceita contexto; ctx só interrompe antes do envio.
func (s *TwilioSender) Send(ctx context.Context, channel messaging.Channel, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return "", ErrEmptyRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	switch channel {
	case messaging.ChannelWhatsApp:
		if s.whatsAppFrom == "" {
			return "", ErrMissingSender
		}
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + s.whatsAppFrom)
	case messaging.ChannelSMS:
		if s.smsFrom == "" {
			return "", ErrMissingSender
		}
		params.SetTo(to)
		params.SetFrom(s.smsFrom)
	default:
		return "", ErrUnsupportedChannel
	}

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.log.Error("Falha ao enviar mensagem pelo Twilio", "channel", channel, "error", err)
		return "", fmt.Errorf("erro ao enviar mensagem: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	s.log.Debug("Mensagem enviada pelo Twilio", "channel", channel, "sid", sid)
	return sid, nil
}
