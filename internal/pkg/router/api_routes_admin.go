package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HawgLeg/equipscout/app/controllers"
	"github.com/HawgLeg/equipscout/internal/pkg/middleware"
)

func (h ApiRouter) registerAdminRoutes(api fiber.Router) {
	admin := api.Group("/admin", middleware.AdminAuthMiddleware())

	admin.Get("/vendors", controllers.HandleAdminListVendors)
	admin.Put("/vendors/:id", controllers.HandleAdminUpdateVendor)

	admin.Get("/analytics", controllers.HandleAdminAnalytics)

	admin.Get("/reports", controllers.HandleAdminListReports)
	admin.Put("/reports/:id", controllers.HandleAdminUpdateReport)

	admin.Get("/billing", controllers.HandleAdminBillingReport)
	admin.Put("/billing/:id", controllers.HandleAdminUpdateCPCRate)
}
