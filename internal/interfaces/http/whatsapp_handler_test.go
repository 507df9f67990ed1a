package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/menuqr/menuqr-api/internal/interfaces/http"
	"github.com/menuqr/menuqr-api/pkg/config"
	"github.com/menuqr/menuqr-api/pkg/logger"
)

func buildWebhookApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	respond := httpapi.NewErrorResponder(log, false)
	h := httpapi.NewWhatsAppHandler(nil, config.UploadConfig{}, "token-esperado", respond, log)

	app := fiber.New()
	app.Get("/webhook", h.VerifyWebhook)
	app.Post("/webhook", h.ReceiveWebhook)
	return app
}

// El handshake de Meta responde el challenge solo con modo y token correctos.
func TestVerifyWebhook_TokenCorrecto(t *testing.T) {
	app := buildWebhookApp(t)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=token-esperado&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "12345", string(body))
}

func TestVerifyWebhook_TokenIncorrecto(t *testing.T) {
	app := buildWebhookApp(t)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=otro&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVerifyWebhook_ModoIncorrecto(t *testing.T) {
	app := buildWebhookApp(t)

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=unsubscribe&hub.verify_token=token-esperado", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Todo evento entrante se confirma, sin importar el contenido.
func TestReceiveWebhook_ConfirmaRecepcion(t *testing.T) {
	app := buildWebhookApp(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(`{"object":"whatsapp_business_account","entry":[{"changes":[]}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "EVENT_RECEIVED", string(body))
}

// Un payload que no viene del API de WhatsApp (sin campo object) no se confirma.
func TestReceiveWebhook_PayloadAjeno(t *testing.T) {
	app := buildWebhookApp(t)

	for _, body := range []string{`{"entry":[]}`, `no es json`} {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "payload: %s", body)
	}
}
