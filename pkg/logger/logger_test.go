package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"ruido":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "nivel %q", in)
	}
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "ledger", Out: &buf})

	log.Component("kardex").Info().Str("item_id", "x1").Msg("movimiento")
	log.Debug().Msg("descartado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ledger", entry["service"])
	assert.Equal(t, "kardex", entry["component"])
	assert.Equal(t, "x1", entry["item_id"])
	assert.Equal(t, "movimiento", entry["message"])
	assert.Equal(t, zerolog.InfoLevel, log.Level())
}

func TestComponent_ReceptorNil(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Component("x").Info().Msg("nada") })
}
