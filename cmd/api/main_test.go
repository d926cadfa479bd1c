package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyhq/stocky-api/pkg/logger"
)

const minimalSwaggerSpec = `{"swagger":"2.0","info":{"title":"Stocky API","version":"1.0"},"paths":{}}`

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestRegisterSwagger_SpecAusenteNoMontaNiPanica(t *testing.T) {
	app := fiber.New()

	require.NotPanics(t, func() {
		registerSwagger(app, testLogger(), filepath.Join(t.TempDir(), "swagger.json"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegisterSwagger_SpecPresenteMontaDocs(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(specPath, []byte(minimalSwaggerSpec), 0o600))

	app := fiber.New()
	registerSwagger(app, testLogger(), specPath)

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
