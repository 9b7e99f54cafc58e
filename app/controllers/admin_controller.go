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
	"github.com/HawgLeg/equipscout/internal/pkg/billing"
	"github.com/HawgLeg/equipscout/internal/pkg/statistics"
)

var billingAggregator *billing.Aggregator

// InitializeAdminController wires the billing aggregator. Must run after the
// repository factory is initialized.
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	billingAggregator = billing.NewAggregator(repos.Vendor, repos.ContactEvent)
}

// HandleAdminListVendors serves GET /api/admin/vendors.
func HandleAdminListVendors(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	vendors, err := repos.Vendor.ListWithCounts()
	if err != nil {
		log.Printf("admin vendor list failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Vendor list failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, vendors)
}

// AdminVendorPayload is the admin vendor update body. Every field is
// optional; absent fields are left untouched.
type AdminVendorPayload struct {
	IsSponsored     *bool   `json:"isSponsored"`
	IsActive        *bool   `json:"isActive"`
	PlanStatus      *string `json:"planStatus" validate:"omitempty,oneof=free pro enterprise"`
	BillingStatus   *string `json:"billingStatus" validate:"omitempty,oneof=ACTIVE PAUSED OPTED_OUT"`
	AdminNotes      *string `json:"adminNotes"`
	LastContactedAt *string `json:"lastContactedAt"`
}

// HandleAdminUpdateVendor serves PUT /api/admin/vendors/:id.
func HandleAdminUpdateVendor(c *fiber.Ctx) error {
	var payload AdminVendorPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	var lastContactedAt *time.Time
	if payload.LastContactedAt != nil && *payload.LastContactedAt != "" {
		parsed, err := parseDate(*payload.LastContactedAt)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid lastContactedAt", "INVALID_REQUEST")
		}
		lastContactedAt = &parsed
	}

	repos := repository.GetGlobalRepositories()
	vendor, err := repos.Vendor.GetByUUID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("admin vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Vendor update failed", "INTERNAL")
	}

	if payload.IsSponsored != nil {
		vendor.IsSponsored = *payload.IsSponsored
	}
	if payload.IsActive != nil {
		vendor.IsActive = *payload.IsActive
	}
	if payload.PlanStatus != nil {
		vendor.PlanStatus = *payload.PlanStatus
	}
	if payload.BillingStatus != nil {
		vendor.BillingStatus = *payload.BillingStatus
	}
	if payload.AdminNotes != nil {
		vendor.AdminNotes = *payload.AdminNotes
	}
	if lastContactedAt != nil {
		vendor.LastContactedAt = lastContactedAt
	}

	if err := repos.Vendor.Update(vendor); err != nil {
		log.Printf("admin vendor update failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Vendor update failed", "INTERNAL")
	}

	writeAudit(&vendor.ID, "admin", models.AuditActionAdminAction, fmt.Sprintf("updated vendor %s", vendor.UUID))

	// Active-vendor counts may have changed.
	statistics.InvalidateCache()

	return dataJSON(c, fiber.StatusOK, vendor)
}

// HandleAdminAnalytics serves GET /api/admin/analytics.
func HandleAdminAnalytics(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()

	stats, err := statistics.GetPlatformStats()
	if err != nil {
		log.Printf("platform statistics failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Analytics failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, stats)
}

// HandleAdminListReports serves GET /api/admin/reports.
func HandleAdminListReports(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.IsValidReportStatus(status) {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown report status", "INVALID_REQUEST")
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	repos := repository.GetGlobalRepositories()
	reports, err := repos.Report.List(status, limit, offset)
	if err != nil {
		log.Printf("admin report list failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Report list failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, reports)
}

// AdminReportPayload moves a report through the review lifecycle.
type AdminReportPayload struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed dismissed"`
}

// HandleAdminUpdateReport serves PUT /api/admin/reports/:id. Moving a report
// out of pending stamps reviewedAt; moving it back clears it.
func HandleAdminUpdateReport(c *fiber.Ctx) error {
	var payload AdminReportPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()
	report, err := repos.Report.GetByUUID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Report not found", "REPORT_NOT_FOUND")
		}
		log.Printf("admin report lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Report update failed", "INTERNAL")
	}

	report.Status = payload.Status
	if payload.Status == models.ReportStatusPending {
		report.ReviewedAt = nil
	} else {
		now := time.Now()
		report.ReviewedAt = &now
	}

	if err := repos.Report.Update(report); err != nil {
		log.Printf("admin report update failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Report update failed", "INTERNAL")
	}

	writeAudit(nil, "admin", models.AuditActionAdminAction, fmt.Sprintf("set report %s to %s", report.UUID, report.Status))

	// Pending-report counts may have changed.
	statistics.InvalidateCache()

	return dataJSON(c, fiber.StatusOK, report)
}

// HandleAdminBillingReport serves GET /api/admin/billing.
func HandleAdminBillingReport(c *fiber.Ctx) error {
	report, err := billingAggregator.BuildReport()
	if err != nil {
		log.Printf("billing report failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Billing report failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, report)
}

// AdminCPCRatePayload sets a vendor's per-click rate.
type AdminCPCRatePayload struct {
	CPCRate *float64 `json:"cpcRate" validate:"required"`
}

// HandleAdminUpdateCPCRate serves PUT /api/admin/billing/:id.
func HandleAdminUpdateCPCRate(c *fiber.Ctx) error {
	var payload AdminCPCRatePayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if payload.CPCRate == nil || *payload.CPCRate < 0 {
		return errorJSON(c, fiber.StatusBadRequest, "cpcRate must be a non-negative number", "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()
	vendor, err := repos.Vendor.GetByUUID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("admin vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Rate update failed", "INTERNAL")
	}

	vendorBilling, err := repos.Vendor.UpsertBilling(vendor.ID, *payload.CPCRate)
	if err != nil {
		log.Printf("cpc rate upsert failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Rate update failed", "INTERNAL")
	}

	writeAudit(&vendor.ID, "admin", models.AuditActionAdminAction, fmt.Sprintf("set cpc rate of %s to %.2f", vendor.UUID, *payload.CPCRate))

	return dataJSON(c, fiber.StatusOK, vendorBilling)
}
