// Package logger expõe o Logger da aplicação sobre o zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})

	// With devolve um Logger que sempre inclui os pares informados
	With(keysAndValues ...interface{}) Logger
}

// ZeroLogger implementa Logger com zerolog
type ZeroLogger struct {
	log zerolog.Logger
}

// Options controla nível e formato da saída
type Options struct {
	Level  string    // debug, info, warn ou error
	Format string    // console ou json
	Out    io.Writer // padrão os.Stdout
}

// New cria um Logger conforme as opções
func New(opts Options) *ZeroLogger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return &ZeroLogger{log: zl}
}

// NewLogger cria o Logger padrão, em console e nível info
func NewLogger() Logger {
	return New(Options{Level: "info"})
}

// Nop descarta tudo; útil em testes
func Nop() Logger {
	return &ZeroLogger{log: zerolog.Nop()}
}

// ParseLevel converte o nome do nível; valores desconhecidos viram info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Zerolog devolve o logger subjacente
func (l *ZeroLogger) Zerolog() zerolog.Logger {
	return l.log
}

// Info registra uma mensagem de informação
func (l *ZeroLogger) Info(msg string, keysAndValues ...interface{}) {
	fields(l.log.Info(), keysAndValues).Msg(msg)
}

// Error registra uma mensagem de erro
func (l *ZeroLogger) Error(msg string, keysAndValues ...interface{}) {
	fields(l.log.Error(), keysAndValues).Msg(msg)
}

// Debug registra uma mensagem de debug
func (l *ZeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	fields(l.log.Debug(), keysAndValues).Msg(msg)
}

// Warn registra uma mensagem de aviso
func (l *ZeroLogger) Warn(msg string, keysAndValues ...interface{}) {
	fields(l.log.Warn(), keysAndValues).Msg(msg)
}

// With implementa Logger
func (l *ZeroLogger) With(keysAndValues ...interface{}) Logger {
	ctx := l.log.With()
	for i := 0; i < len(keysAndValues); i += 2 {
		key, val := pair(keysAndValues, i)
		ctx = ctx.Interface(key, val)
	}
	return &ZeroLogger{log: ctx.Logger()}
}

func fields(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		key, val := pair(keysAndValues, i)
		if err, ok := val.(error); ok {
			e = e.AnErr(key, err)
			continue
		}
		e = e.Interface(key, val)
	}
	return e
}

// pair lê o par na posição i; chave sem valor fica registrada como "!MISSING"
func pair(keysAndValues []interface{}, i int) (string, interface{}) {
	key, ok := keysAndValues[i].(string)
	if !ok {
		key = fmt.Sprint(keysAndValues[i])
	}
	if i+1 >= len(keysAndValues) {
		return key, "!MISSING"
	}
	return key, keysAndValues[i+1]
}
