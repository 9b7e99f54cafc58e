package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/search"
)

// HandleSearch serves GET /api/search: geo-radius equipment search with
// filtering and ranked results.
func HandleSearch(c *fiber.Ctx) error {
	params := search.Params{
		RadiusMiles: search.DefaultRadiusMiles,
		NeedDate:    c.Query("needDate", "any"),
	}

	if equipmentType := c.Query("equipmentType"); equipmentType != "" {
		if !models.IsValidEquipmentType(equipmentType) {
			return errorJSON(c, fiber.StatusBadRequest, "Unknown equipment type", "INVALID_REQUEST")
		}
		params.EquipmentType = equipmentType
	}

	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid latitude", "INVALID_REQUEST")
		}
		params.Lat = &lat
	}
	if lngStr := c.Query("lng"); lngStr != "" {
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid longitude", "INVALID_REQUEST")
		}
		params.Lng = &lng
	}
	if (params.Lat == nil) != (params.Lng == nil) {
		return errorJSON(c, fiber.StatusBadRequest, "lat and lng must be supplied together", "INVALID_REQUEST")
	}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid radius", "INVALID_REQUEST")
		}
		params.RadiusMiles = radius
	}

	if maxRateStr := c.Query("maxDayRate"); maxRateStr != "" {
		maxRate, err := strconv.ParseFloat(maxRateStr, 64)
		if err != nil || maxRate < 0 {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid maxDayRate", "INVALID_REQUEST")
		}
		params.MaxDayRate = &maxRate
	}

	params.AvailableOnly = c.Query("availableOnly") == "true"

	engine := search.NewEngine(repository.GetGlobalFactory().GetEquipmentRepository())
	listings, err := engine.Search(params)
	if err != nil {
		log.Printf("search failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Search failed", "INTERNAL")
	}

	return dataJSON(c, fiber.StatusOK, listings)
}
