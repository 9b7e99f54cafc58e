package middleware

import (
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/constants"
	"github.com/HawgLeg/equipscout/internal/pkg/env"
	"github.com/HawgLeg/equipscout/internal/pkg/vendorcontext"
)

// VendorAuthMiddleware authenticates requests carrying a vendor API key and
// attaches the vendor context. Session-based auth lives outside this
// service; the API key is the only credential it understands.
func VendorAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := extractAPIKey(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": fiber.Map{"message": "Authentication required", "code": "UNAUTHORIZED"}})
		}

		repo := repository.GetGlobalFactory().GetVendorRepository()
		vendor, err := repo.GetByAPIKeyHash(models.HashAPIKey(apiKey))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": fiber.Map{"message": "Invalid API key", "code": "UNAUTHORIZED"}})
			}
			log.Printf("vendor api key lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fiber.Map{"message": "API key verification failed", "code": "INTERNAL"}})
		}

		vendorcontext.SetVendorContext(c, vendorcontext.VendorContext{
			VendorID:        vendor.ID,
			VendorUUID:      vendor.UUID,
			Name:            vendor.Name,
			IsAuthenticated: true,
		})

		return c.Next()
	}
}

// AdminAuthMiddleware gates the admin area behind the shared admin key.
func AdminAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminKey := env.GetEnv("ADMIN_API_KEY", "")
		if adminKey == "" {
			log.Print("ADMIN_API_KEY not configured, admin area disabled")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": fiber.Map{"message": "Admin access required", "code": "FORBIDDEN"}})
		}

		provided := extractAPIKey(c)
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": fiber.Map{"message": "Authentication required", "code": "UNAUTHORIZED"}})
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": fiber.Map{"message": "Admin access required", "code": "FORBIDDEN"}})
		}

		return c.Next()
	}
}

func extractAPIKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.Get(constants.HeaderAPIKey)); key != "" {
		return key
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
