package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/entitlements"
	"github.com/HawgLeg/equipscout/internal/pkg/metrics/counter"
	"github.com/HawgLeg/equipscout/internal/pkg/vendorcontext"
)

// HandleGetEquipment serves GET /api/equipment/:id, the public listing detail.
func HandleGetEquipment(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	equip, err := repos.Equipment.GetByUUID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
		}
		log.Printf("equipment lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment lookup failed", "INTERNAL")
	}

	// View counting is best-effort analytics; never block the response on it.
	if err := counter.AddEquipmentView(equip.ID); err != nil {
		log.Printf("view counter increment failed for equipment %d: %v", equip.ID, err)
	}

	return dataJSON(c, fiber.StatusOK, equip)
}

// EquipmentPayload is the vendor-facing create/update body for a listing.
type EquipmentPayload struct {
	Type        string   `json:"type" validate:"required"`
	SizeClass   string   `json:"sizeClass" validate:"omitempty,oneof=small medium large"`
	Make        string   `json:"make" validate:"max=100"`
	Model       string   `json:"model" validate:"max=100"`
	Year        *int     `json:"year"`
	RateHourMin *float64 `json:"rateHourMin"`
	RateHourMax *float64 `json:"rateHourMax"`
	RateDayMin  *float64 `json:"rateDayMin"`
	RateDayMax  *float64 `json:"rateDayMax"`
	Notes       string   `json:"notes" validate:"max=5000"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url,max=255"`
}

// HandleListVendorEquipment serves GET /api/vendors/me/equipment.
func HandleListVendorEquipment(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)
	repos := repository.GetGlobalRepositories()

	listings, err := repos.Equipment.ListByVendor(vc.VendorID)
	if err != nil {
		log.Printf("vendor equipment list failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment list failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, listings)
}

// HandleCreateEquipment serves POST /api/vendors/me/equipment.
func HandleCreateEquipment(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)

	var payload EquipmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}
	if !models.IsValidEquipmentType(payload.Type) {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown equipment type", "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()

	vendor, err := repos.Vendor.GetByID(vc.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment creation failed", "INTERNAL")
	}
	existing, err := repos.Equipment.ListByVendor(vc.VendorID)
	if err != nil {
		log.Printf("vendor equipment list failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment creation failed", "INTERNAL")
	}
	if !entitlements.CanCreateListing(vendor.PlanStatus, len(existing)) {
		return errorJSON(c, fiber.StatusForbidden, "Listing limit reached for your plan", "PLAN_LIMIT")
	}

	equip := &models.Equipment{
		VendorID:    vc.VendorID,
		Type:        payload.Type,
		SizeClass:   payload.SizeClass,
		Make:        payload.Make,
		Model:       payload.Model,
		Year:        payload.Year,
		RateHourMin: payload.RateHourMin,
		RateHourMax: payload.RateHourMax,
		RateDayMin:  payload.RateDayMin,
		RateDayMax:  payload.RateDayMax,
		Notes:       payload.Notes,
		ImageURL:    payload.ImageURL,
	}

	if err := repos.Equipment.Create(equip); err != nil {
		log.Printf("equipment creation failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment creation failed", "INTERNAL")
	}

	writeAudit(&vc.VendorID, "vendor", models.AuditActionListingEdit, fmt.Sprintf("created listing %s (%s)", equip.UUID, equip.Type))

	return dataJSON(c, fiber.StatusCreated, equip)
}

// HandleUpdateEquipment serves PUT /api/vendors/me/equipment/:id. Only the
// owning vendor can touch a listing; lookups are scoped to the vendor so a
// foreign listing reads as not found.
func HandleUpdateEquipment(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)

	var payload EquipmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}
	if !models.IsValidEquipmentType(payload.Type) {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown equipment type", "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()
	equip, err := repos.Equipment.GetByUUIDForVendor(c.Params("id"), vc.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
		}
		log.Printf("equipment lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment update failed", "INTERNAL")
	}

	equip.Type = payload.Type
	equip.SizeClass = payload.SizeClass
	equip.Make = payload.Make
	equip.Model = payload.Model
	equip.Year = payload.Year
	equip.RateHourMin = payload.RateHourMin
	equip.RateHourMax = payload.RateHourMax
	equip.RateDayMin = payload.RateDayMin
	equip.RateDayMax = payload.RateDayMax
	equip.Notes = payload.Notes
	equip.ImageURL = payload.ImageURL

	if err := repos.Equipment.Update(equip); err != nil {
		log.Printf("equipment update failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment update failed", "INTERNAL")
	}

	writeAudit(&vc.VendorID, "vendor", models.AuditActionListingEdit, fmt.Sprintf("updated listing %s", equip.UUID))

	return dataJSON(c, fiber.StatusOK, equip)
}

// HandleDeleteEquipment serves DELETE /api/vendors/me/equipment/:id.
func HandleDeleteEquipment(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)
	repos := repository.GetGlobalRepositories()

	equip, err := repos.Equipment.GetByUUIDForVendor(c.Params("id"), vc.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
		}
		log.Printf("equipment lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment deletion failed", "INTERNAL")
	}

	if err := repos.Equipment.Delete(equip.ID); err != nil {
		log.Printf("equipment deletion failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Equipment deletion failed", "INTERNAL")
	}

	writeAudit(&vc.VendorID, "vendor", models.AuditActionListingEdit, fmt.Sprintf("deleted listing %s", equip.UUID))

	return dataJSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// AvailabilityPayload is the vendor-facing availability update body.
type AvailabilityPayload struct {
	Status string `json:"status" validate:"required"`
	// EarliestDate accepts YYYY-MM-DD or RFC 3339. Ignored unless the
	// status is LIMITED.
	EarliestDate string `json:"earliestDate"`
}

// HandleUpdateAvailability serves PUT /api/vendors/me/equipment/:id/availability.
func HandleUpdateAvailability(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)

	var payload AvailabilityPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if !models.IsValidAvailabilityStatus(payload.Status) {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown availability status", "INVALID_REQUEST")
	}

	var earliestDate *time.Time
	if payload.EarliestDate != "" {
		parsed, err := parseDate(payload.EarliestDate)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid earliestDate", "INVALID_REQUEST")
		}
		earliestDate = &parsed
	}

	repos := repository.GetGlobalRepositories()
	equip, err := repos.Equipment.GetByUUIDForVendor(c.Params("id"), vc.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
		}
		log.Printf("equipment lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Availability update failed", "INTERNAL")
	}

	availability := equip.Availability
	if availability == nil {
		availability = &models.Availability{EquipmentID: equip.ID}
	}
	if err := availability.SetStatus(payload.Status, earliestDate, time.Now()); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown availability status", "INVALID_REQUEST")
	}

	if err := repos.Equipment.SaveAvailability(availability); err != nil {
		log.Printf("availability update failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Availability update failed", "INTERNAL")
	}

	writeAudit(&vc.VendorID, "vendor", models.AuditActionListingEdit, fmt.Sprintf("set availability of %s to %s", equip.UUID, availability.Status))

	return dataJSON(c, fiber.StatusOK, availability)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
