package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HawgLeg/equipscout/app/controllers"
)

func (h ApiRouter) registerPublicRoutes(api fiber.Router) {
	api.Get("/search", controllers.HandleSearch)
	api.Get("/equipment/:id", controllers.HandleGetEquipment)

	api.Post("/leads", controllers.HandleCreateLead)
	api.Post("/contact-events", controllers.HandleLegacyContactEvent)
	api.Post("/contact-events/log", controllers.HandleLogContactEvent)
	api.Post("/reports", controllers.HandleCreateReport)

	api.Post("/vendors/signup", controllers.HandleVendorSignup)
}
