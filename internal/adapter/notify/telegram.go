package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// ErrEmptyChatID indica configuração de Telegram sem chat de destino
var ErrEmptyChatID = errors.New("chat do Telegram não informado")

// messageSender é a parte do bot usada aqui
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier envia avisos para o chat do dono do negócio
type TelegramNotifier struct {
	bot messageSender
	log logger.Logger
}

// NewTelegramNotifier cria o notificador. O bot não faz polling: só envia mensagens.
func NewTelegramNotifier(token string, log logger.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("erro ao criar bot do Telegram: %w", err)
	}
	return &TelegramNotifier{bot: b, log: log}, nil
}

// Notify envia text para chatID
func (n *TelegramNotifier) Notify(ctx context.Context, chatID, text string) error {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return ErrEmptyChatID
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		n.log.Error("Falha ao enviar mensagem pelo Telegram", "chat_id", chatID, "error", err)
		return fmt.Errorf("erro ao enviar mensagem pelo Telegram: %w", err)
	}
	return nil
}
