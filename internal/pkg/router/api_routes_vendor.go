package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HawgLeg/equipscout/app/controllers"
	"github.com/HawgLeg/equipscout/internal/pkg/middleware"
)

func (h ApiRouter) registerVendorRoutes(api fiber.Router) {
	me := api.Group("/vendors/me", middleware.VendorAuthMiddleware())

	me.Get("/", controllers.HandleGetVendorProfile)
	me.Put("/", controllers.HandleUpdateVendorProfile)
	me.Get("/analytics", controllers.HandleVendorAnalytics)

	me.Get("/equipment", controllers.HandleListVendorEquipment)
	me.Post("/equipment", controllers.HandleCreateEquipment)
	me.Put("/equipment/:id", controllers.HandleUpdateEquipment)
	me.Delete("/equipment/:id", controllers.HandleDeleteEquipment)
	me.Put("/equipment/:id/availability", controllers.HandleUpdateAvailability)
}
