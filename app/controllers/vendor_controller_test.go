package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/vendorcontext"
)

// missingVendorRepo answers every lookup with gorm.ErrRecordNotFound.
type missingVendorRepo struct{}

func (missingVendorRepo) Create(*models.Vendor) error { return nil }
func (missingVendorRepo) GetByID(uint) (*models.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (missingVendorRepo) GetByUUID(string) (*models.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (missingVendorRepo) GetByUUIDWithEquipment(string) (*models.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (missingVendorRepo) GetByAPIKeyHash(string) (*models.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (missingVendorRepo) Update(*models.Vendor) error { return nil }
func (missingVendorRepo) ListWithCounts() ([]repository.VendorWithCounts, error) {
	return nil, nil
}
func (missingVendorRepo) ListWithBilling() ([]models.Vendor, error) { return nil, nil }
func (missingVendorRepo) UpsertBilling(uint, float64) (*models.VendorBilling, error) {
	return nil, gorm.ErrRecordNotFound
}
func (missingVendorRepo) Count() (int64, error)       { return 0, nil }
func (missingVendorRepo) CountActive() (int64, error) { return 0, nil }

func decodeErrorEnvelope(t *testing.T, body io.Reader) (message, code string) {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed.Error.Message, parsed.Error.Code
}

func TestVendorAnalyticsMissingVendorIsNotFound(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{Vendor: missingVendorRepo{}})

	app := fiber.New()
	app.Get("/api/vendors/me/analytics", func(c *fiber.Ctx) error {
		vendorcontext.SetVendorContext(c, vendorcontext.VendorContext{
			VendorID:        1,
			VendorUUID:      "deleted-after-auth",
			IsAuthenticated: true,
		})
		return HandleVendorAnalytics(c)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/vendors/me/analytics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, code := decodeErrorEnvelope(t, resp.Body)
	assert.Equal(t, "VENDOR_NOT_FOUND", code)
}
