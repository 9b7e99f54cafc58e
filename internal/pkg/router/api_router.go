package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/HawgLeg/equipscout/app/controllers"
	"github.com/HawgLeg/equipscout/internal/pkg/cache"
	"github.com/HawgLeg/equipscout/internal/pkg/constants"
	"github.com/HawgLeg/equipscout/internal/pkg/env"
	"github.com/HawgLeg/equipscout/internal/pkg/ratelimit"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Initialize controllers with repositories before any route can fire.
	controllers.InitializeContactController(newContactLimiter())
	controllers.InitializeAdminController()

	// The group-level limiter is a coarse abuse guard for the whole API;
	// the contact-event endpoint additionally enforces its own per-IP
	// budget with billing-grade semantics.
	api := app.Group(constants.APIRoute, limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "equipscout api",
		})
	})

	h.registerPublicRoutes(api)
	h.registerVendorRoutes(api)
	h.registerAdminRoutes(api)
}

// newContactLimiter builds the per-IP contact-event limiter. Counters live
// in Redis when a cache host is configured so several instances share one
// budget; otherwise they stay in process memory.
func newContactLimiter() *ratelimit.Limiter {
	opts := []ratelimit.Option{}
	if env.GetEnv("CACHE_HOST", "") != "" {
		opts = append(opts, ratelimit.WithStore(ratelimit.NewRedisStore(cache.GetClient(), "ratelimit:contact:")))
	}
	return ratelimit.New(ratelimit.DefaultCapacity, ratelimit.DefaultWindow, opts...)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
