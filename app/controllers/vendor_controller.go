package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/billing"
	"github.com/HawgLeg/equipscout/internal/pkg/vendorcontext"
)

// VendorSignupPayload is the public vendor registration body.
type VendorSignupPayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=150"`
	Phone       string   `json:"phone" validate:"required,min=1,max=50"`
	Email       string   `json:"email" validate:"required,email,max=200"`
	Website     string   `json:"website" validate:"omitempty,url,max=255"`
	YardAddress string   `json:"yardAddress" validate:"required,max=255"`
	YardLat     *float64 `json:"yardLat"`
	YardLng     *float64 `json:"yardLng"`
}

// HandleVendorSignup serves POST /api/vendors/signup. The raw API key appears
// in this response and nowhere else; only its hash is stored.
func HandleVendorSignup(c *fiber.Ctx) error {
	var payload VendorSignupPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	vendor := &models.Vendor{
		Name:          payload.Name,
		Phone:         payload.Phone,
		Email:         strings.ToLower(strings.TrimSpace(payload.Email)),
		Website:       payload.Website,
		YardAddress:   payload.YardAddress,
		YardLat:       payload.YardLat,
		YardLng:       payload.YardLng,
		PlanStatus:    models.PlanFree,
		IsActive:      true,
		BillingStatus: models.BillingStatusActive,
	}

	rawKey, err := vendor.IssueAPIKey()
	if err != nil {
		log.Printf("api key generation failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Signup failed", "INTERNAL")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Vendor.Create(vendor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorJSON(c, fiber.StatusConflict, "A vendor with this email already exists", "EMAIL_TAKEN")
		}
		log.Printf("vendor creation failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Signup failed", "INTERNAL")
	}

	writeAudit(&vendor.ID, "vendor", models.AuditActionSignup, "vendor signed up: "+vendor.UUID)

	return dataJSON(c, fiber.StatusCreated, fiber.Map{
		"vendor": vendor,
		"apiKey": rawKey,
	})
}

// HandleGetVendorProfile serves GET /api/vendors/me.
func HandleGetVendorProfile(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)
	repos := repository.GetGlobalRepositories()

	vendor, err := repos.Vendor.GetByUUIDWithEquipment(vc.VendorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("vendor profile lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Profile lookup failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, vendor)
}

// VendorProfilePayload is the vendor self-service profile update body. Plan,
// sponsorship and billing status are admin-only and deliberately absent.
type VendorProfilePayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=150"`
	Phone       string   `json:"phone" validate:"required,min=1,max=50"`
	Website     string   `json:"website" validate:"omitempty,url,max=255"`
	YardAddress string   `json:"yardAddress" validate:"required,max=255"`
	YardLat     *float64 `json:"yardLat"`
	YardLng     *float64 `json:"yardLng"`
}

// HandleUpdateVendorProfile serves PUT /api/vendors/me.
func HandleUpdateVendorProfile(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)

	var payload VendorProfilePayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()
	vendor, err := repos.Vendor.GetByUUID(vc.VendorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Profile update failed", "INTERNAL")
	}

	vendor.Name = payload.Name
	vendor.Phone = payload.Phone
	vendor.Website = payload.Website
	vendor.YardAddress = payload.YardAddress
	vendor.YardLat = payload.YardLat
	vendor.YardLng = payload.YardLng

	if err := repos.Vendor.Update(vendor); err != nil {
		log.Printf("vendor update failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Profile update failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, vendor)
}

// HandleVendorAnalytics serves GET /api/vendors/me/analytics: all-time and
// 30-day activity counts plus the current billing position.
func HandleVendorAnalytics(c *fiber.Ctx) error {
	vc := vendorcontext.GetVendorContext(c)
	repos := repository.GetGlobalRepositories()

	vendor, err := repos.Vendor.GetByUUID(vc.VendorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}

	now := time.Now()
	since30d := now.AddDate(0, 0, -30)
	weekStart := billing.WeekStart(now)
	monthStart := billing.MonthStart(now)

	totalEvents, err := repos.ContactEvent.CountByVendor(vendor.ID)
	if err != nil {
		log.Printf("contact event count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	events30d, err := repos.ContactEvent.CountByVendorSince(vendor.ID, since30d)
	if err != nil {
		log.Printf("contact event count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	totalLeads, err := repos.LeadRequest.CountByVendor(vendor.ID)
	if err != nil {
		log.Printf("lead count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	leads30d, err := repos.LeadRequest.CountByVendorSince(vendor.ID, since30d)
	if err != nil {
		log.Printf("lead count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	typeCounts, err := repos.ContactEvent.TypeCountsByVendor(vendor.ID)
	if err != nil {
		log.Printf("event type tally failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	weekBillable, err := repos.ContactEvent.CountBillableByVendorSince(vendor.ID, weekStart)
	if err != nil {
		log.Printf("billable count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}
	monthBillable, err := repos.ContactEvent.CountBillableByVendorSince(vendor.ID, monthStart)
	if err != nil {
		log.Printf("billable count failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}

	cpcRate := models.EffectiveCPCRate(vendor.Billing)

	return dataJSON(c, fiber.StatusOK, fiber.Map{
		"contactEvents": fiber.Map{
			"total":  totalEvents,
			"last30": events30d,
			"byType": typeCounts,
		},
		"leads": fiber.Map{
			"total":  totalLeads,
			"last30": leads30d,
		},
		"billing": fiber.Map{
			"billingStatus":        vendor.BillingStatus,
			"cpcRate":              cpcRate,
			"weekBillableEvents":   weekBillable,
			"weekEstimatedCharge":  float64(weekBillable) * cpcRate,
			"monthBillableEvents":  monthBillable,
			"monthEstimatedCharge": float64(monthBillable) * cpcRate,
		},
	})
}
