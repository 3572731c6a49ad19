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
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "nivel desconocido cae en info")
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info").Component("sales")
	l.Info().Str("invoice_number", "INV-1").Msg("venta registrada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "sales", line["component"])
	assert.Equal(t, "INV-1", line["invoice_number"])
}

func TestNivelWarnFiltraInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "warn")
	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
}
