package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/cache"
	"github.com/HawgLeg/equipscout/internal/pkg/database"
	"github.com/HawgLeg/equipscout/internal/pkg/env"
	"github.com/HawgLeg/equipscout/internal/pkg/metrics/counter"
	"github.com/HawgLeg/equipscout/internal/pkg/router"
)

const viewCounterFlushInterval = time.Minute

func main() {
	app := NewApplication()

	go flushViewCountersLoop()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		AppName: "equipscout",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// flushViewCountersLoop periodically drains the Redis view counters into the
// equipment table. Counts are display-only; a failed flush retries on the
// next tick.
func flushViewCountersLoop() {
	ticker := time.NewTicker(viewCounterFlushInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := counter.FlushAll(); err != nil {
			log.Printf("view counter flush failed: %v", err)
		}
	}
}
