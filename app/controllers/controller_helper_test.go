package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetClientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("X-Real-IP", "198.51.100.2")

	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", got)
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetClientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")

	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.2", got)
}

func TestGetClientIPNeverEmpty(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetClientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestParseDateAcceptsDateOnly(t *testing.T) {
	parsed, err := parseDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDateAcceptsRFC3339(t *testing.T) {
	parsed, err := parseDate("2025-07-01T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC), parsed)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := parseDate("next tuesday")
	assert.Error(t, err)
}
