package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/init-pkg/sheet-loader/domain/dtos"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	cfg := &config.Config{Import: config.ImportConfig{MaxFileSize: 1 << 20}}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeError(t *testing.T, resp *http.Response) dtos.ErrorResponse {
	t.Helper()
	var body dtos.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestSwaggerDoc(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/imports/upload")
}

func TestSwaggerUI(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "swagger-ui")
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	app := newApp()
	app.Get("/bad", func(fiber.Ctx) error { return errs.New(errs.KindInvalidInput, "op", "no file uploaded") })
	app.Get("/gone", func(fiber.Ctx) error { return errs.New(errs.KindNotFound, "op", "import x not found") })
	app.Get("/boom", func(fiber.Ctx) error { return errs.New(errs.KindConnection, "op", "cannot reach database") })

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", http.StatusBadRequest, "no file uploaded"},
		{"/gone", http.StatusNotFound, "import x not found"},
		{"/boom", http.StatusInternalServerError, "cannot reach database"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		body := decodeError(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, decodeError(t, resp).Success)
}
