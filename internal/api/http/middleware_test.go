package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ada-support/helpdesk/internal/observability"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestErrorEnvelopeForDomainErrors(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Ticket not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Ticket not found", payload["message"])
	assert.NotContains(t, payload, "error")
}

func TestErrorEnvelopeExposesWrappedError(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewUpstreamFailure("Failed to upload image", assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "Failed to upload image", payload["message"])
	assert.NotEmpty(t, payload["error"])
}

func TestPanicBecomesInternalError(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, false, payload["success"])
}

func TestRequireJSONContent(t *testing.T) {
	app := newTestApp()
	app.Get("/list", RequireJSONContent(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	req := httptest.NewRequest("GET", "/list", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 415, resp.StatusCode)
	assert.Equal(t, "Invalid content type", decodeBody(t, resp.Body)["message"])

	req = httptest.NewRequest("GET", "/list", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
