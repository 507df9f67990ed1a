package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menuqr/menuqr-api/pkg/logger"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestNew_EstampaServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Service: "menuqr-api", Output: &buf})

	log.Component("whatsapp").Tenant("tacos-paco").Info().Str("public_id", "pid-1").Msg("estado publicado")

	line := lastLine(t, &buf)
	assert.Equal(t, "menuqr-api", line["service"])
	assert.Equal(t, "whatsapp", line["component"])
	assert.Equal(t, "tacos-paco", line["restaurant_id"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "estado publicado", line["message"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "error", Output: &buf})

	log.Info().Msg("ruido")
	assert.Zero(t, buf.Len())

	log.Error().Msg("falla real")
	assert.Contains(t, buf.String(), "falla real")
}

func TestNew_NivelPorDefectoSegunEntorno(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	log.Debug().Msg("detalle")
	assert.Zero(t, buf.Len(), "en producción el nivel por defecto es info")

	log.Info().Msg("arranque")
	assert.Contains(t, buf.String(), "arranque")
}
