package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"qualquer", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "json", Out: &buf})

	l.With("tenant_id", "t1").Error("falha ao salvar", "entry_id", "e1", "error", errors.New("boom"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "falha ao salvar", line["message"])
	assert.Equal(t, "t1", line["tenant_id"])
	assert.Equal(t, "e1", line["entry_id"])
	assert.Equal(t, "boom", line["error"])
}

func TestLevelFiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Format: "json", Out: &buf})

	l.Info("ignorada")
	l.Debug("ignorada")
	assert.Zero(t, buf.Len())

	l.Warn("registrada", "sem_valor")
	assert.Contains(t, buf.String(), "!MISSING")
}
