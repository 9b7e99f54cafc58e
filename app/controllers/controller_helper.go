package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
)

// errorJSON writes the error envelope shared by the whole API:
// {"error": {"message": ..., "code": ...}}.
func errorJSON(c *fiber.Ctx, status int, message, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{"message": message, "code": code},
	})
}

// dataJSON writes the success envelope {"data": ...}.
func dataJSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

// GetClientIP determines the actual client IP address considering proxies.
// Never returns an empty string; raw values only ever reach the hasher.
func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// writeAudit appends an audit trail entry. Best-effort: failures are logged
// and never fail the request that caused them.
func writeAudit(vendorID *uint, actor, action, details string) {
	entry := &models.AuditLog{
		VendorID: vendorID,
		Actor:    actor,
		Action:   action,
		Details:  details,
	}
	if err := repository.GetGlobalFactory().GetAuditLogRepository().Create(entry); err != nil {
		log.Printf("audit log write failed: %v", err)
	}
}
