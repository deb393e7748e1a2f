// Package service reúne os casos de uso que envolvem mais de um repositório
// ou precisam de transação.
package service

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
)

// Clock devolve o instante atual; os testes injetam um relógio fixo
type Clock func() time.Time

// MessageSender entrega uma mensagem no telefone do cliente e devolve o ID do provedor
type MessageSender interface {
	Send(ctx context.Context, channel messaging.Channel, to, body string) (string, error)
}

// ChatNotifier envia um aviso para o chat do dono do negócio
type ChatNotifier interface {
	Notify(ctx context.Context, chatID, text string) error
}

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
