package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/hashid"
	"github.com/HawgLeg/equipscout/internal/pkg/ledger"
	"github.com/HawgLeg/equipscout/internal/pkg/mail"
	"github.com/HawgLeg/equipscout/internal/pkg/ratelimit"
)

var (
	payloadValidator = validator.New()

	contactLimiter *ratelimit.Limiter
	ledgerService  *ledger.Service
)

// InitializeContactController wires the rate limiter and the ledger service.
// Must run after the repository factory is initialized.
func InitializeContactController(limiter *ratelimit.Limiter) {
	repos := repository.GetGlobalRepositories()
	contactLimiter = limiter
	ledgerService = ledger.NewService(repos.Vendor, repos.Equipment, repos.ContactEvent)
}

// LeadPayload is the public lead request body.
type LeadPayload struct {
	VendorID            string   `json:"vendorId" validate:"required,uuid4"`
	EquipmentID         string   `json:"equipmentId" validate:"omitempty,uuid4"`
	RequesterName       string   `json:"requesterName" validate:"max=150"`
	RequesterPhone      string   `json:"requesterPhone" validate:"max=50"`
	RequesterEmail      string   `json:"requesterEmail" validate:"omitempty,email"`
	Message             string   `json:"message" validate:"max=5000"`
	JobsiteLocationText string   `json:"jobsiteLocationText" validate:"max=255"`
	Radius              *float64 `json:"radius"`
	NeedDate            string   `json:"needDate" validate:"omitempty,oneof=today tomorrow this_week any"`
}

// HandleCreateLead serves POST /api/leads.
func HandleCreateLead(c *fiber.Ctx) error {
	var payload LeadPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()

	vendor, err := repos.Vendor.GetByUUID(payload.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
		}
		log.Printf("lead vendor lookup failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Lead creation failed", "INTERNAL")
	}

	var equipmentID *uint
	if payload.EquipmentID != "" {
		equip, err := repos.Equipment.GetByUUID(payload.EquipmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
			}
			log.Printf("lead equipment lookup failed: %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Lead creation failed", "INTERNAL")
		}
		equipmentID = &equip.ID
	}

	lead := &models.LeadRequest{
		VendorID:            vendor.ID,
		EquipmentID:         equipmentID,
		RequesterName:       payload.RequesterName,
		RequesterPhone:      payload.RequesterPhone,
		RequesterEmail:      payload.RequesterEmail,
		Message:             payload.Message,
		JobsiteLocationText: payload.JobsiteLocationText,
		Radius:              payload.Radius,
		NeedDate:            payload.NeedDate,
	}
	if err := repos.LeadRequest.Create(lead); err != nil {
		log.Printf("lead creation failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Lead creation failed", "INTERNAL")
	}

	// Notify the vendor out of band; the lead is already committed.
	go func() {
		if err := mail.SendLeadNotification(vendor, lead); err != nil {
			log.Printf("lead notification mail failed: %v", err)
		}
	}()

	return dataJSON(c, fiber.StatusCreated, lead)
}

// ContactEventPayload is the legacy click-tracking body.
type ContactEventPayload struct {
	VendorID         string `json:"vendorId" validate:"required,uuid4"`
	EquipmentID      string `json:"equipmentId" validate:"omitempty,uuid4"`
	EventType        string `json:"eventType" validate:"required"`
	SearchParamsJSON string `json:"searchParamsJson"`
}

// HandleLegacyContactEvent serves POST /api/contact-events: no rate limit,
// no dedupe, always billable.
func HandleLegacyContactEvent(c *fiber.Ctx) error {
	var payload ContactEventPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	event, err := ledgerService.RecordSimple(payload.VendorID, payload.EquipmentID, payload.EventType, payload.SearchParamsJSON)
	if err != nil {
		return ledgerErrorJSON(c, err)
	}

	return dataJSON(c, fiber.StatusCreated, event)
}

// LogContactEventPayload is the deduped contact logging body.
type LogContactEventPayload struct {
	VendorID           string   `json:"vendorId" validate:"required,uuid4"`
	EquipmentID        string   `json:"equipmentId" validate:"omitempty,uuid4"`
	EventType          string   `json:"eventType" validate:"required"`
	SearchLocationText string   `json:"searchLocationText" validate:"max=255"`
	SearchRadius       *float64 `json:"searchRadius"`
	NeedDate           string   `json:"needDate" validate:"max=20"`
	Referrer           string   `json:"referrer" validate:"max=255"`
	SessionID          string   `json:"sessionId" validate:"max=64"`
}

// HandleLogContactEvent serves POST /api/contact-events/log: the deduped,
// rate-limited write path behind vendor billing.
func HandleLogContactEvent(c *fiber.Ctx) error {
	var payload LogContactEventPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}

	// Only hashes of the client identity ever leave this function.
	ipHash := hashid.Hash(GetClientIP(c))
	userAgentHash := hashid.Hash(c.Get(fiber.HeaderUserAgent, "unknown"))

	if res := contactLimiter.Check("ip:" + ipHash); !res.Allowed {
		return errorJSON(c, fiber.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMITED")
	}

	result, err := ledgerService.Record(ledger.RecordInput{
		VendorUUID:         payload.VendorID,
		EquipmentUUID:      payload.EquipmentID,
		EventType:          payload.EventType,
		SessionID:          payload.SessionID,
		IPHash:             ipHash,
		UserAgentHash:      userAgentHash,
		SearchLocationText: payload.SearchLocationText,
		SearchRadius:       payload.SearchRadius,
		NeedDate:           payload.NeedDate,
		Referrer:           payload.Referrer,
	})
	if err != nil {
		return ledgerErrorJSON(c, err)
	}

	if !result.Billable {
		return dataJSON(c, fiber.StatusOK, fiber.Map{
			"ok":        true,
			"billable":  false,
			"reason":    "duplicate_within_window",
			"sessionId": result.SessionID,
		})
	}

	return dataJSON(c, fiber.StatusCreated, fiber.Map{
		"ok":        true,
		"billable":  true,
		"eventId":   result.EventUUID,
		"sessionId": result.SessionID,
	})
}

func ledgerErrorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrVendorNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
	case errors.Is(err, ledger.ErrEquipmentNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
	case errors.Is(err, ledger.ErrInvalidEventType):
		return errorJSON(c, fiber.StatusBadRequest, "Unknown event type", "INVALID_REQUEST")
	}
	// Losing a billable event has financial consequences; report the write
	// as failed instead of swallowing it.
	log.Printf("contact event write failed: %v", err)
	return errorJSON(c, fiber.StatusInternalServerError, "Event logging failed", "INTERNAL")
}

// ReportPayload is the public listing report body.
type ReportPayload struct {
	EquipmentID string `json:"equipmentId" validate:"omitempty,uuid4"`
	VendorID    string `json:"vendorId" validate:"omitempty,uuid4"`
	Reason      string `json:"reason" validate:"max=100"`
}

// HandleCreateReport serves POST /api/reports.
func HandleCreateReport(c *fiber.Ctx) error {
	var payload ReportPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	}
	if payload.EquipmentID == "" && payload.VendorID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Either equipmentId or vendorId must be provided", "INVALID_REQUEST")
	}

	repos := repository.GetGlobalRepositories()

	var equipmentID, vendorID *uint
	if payload.EquipmentID != "" {
		equip, err := repos.Equipment.GetByUUID(payload.EquipmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorJSON(c, fiber.StatusNotFound, "Equipment not found", "EQUIPMENT_NOT_FOUND")
			}
			log.Printf("report equipment lookup failed: %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Report creation failed", "INTERNAL")
		}
		equipmentID = &equip.ID
	}
	if payload.VendorID != "" {
		vendor, err := repos.Vendor.GetByUUID(payload.VendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorJSON(c, fiber.StatusNotFound, "Vendor not found", "VENDOR_NOT_FOUND")
			}
			log.Printf("report vendor lookup failed: %v", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Report creation failed", "INTERNAL")
		}
		vendorID = &vendor.ID
	}

	reason := payload.Reason
	if reason == "" {
		reason = "outdated"
	}

	report := &models.Report{
		EquipmentID: equipmentID,
		VendorID:    vendorID,
		Reason:      reason,
		Status:      models.ReportStatusPending,
	}
	if err := repos.Report.Create(report); err != nil {
		log.Printf("report creation failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Report creation failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusCreated, report)
}
