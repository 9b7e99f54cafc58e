package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

type stubEquipment struct {
	listings []models.Equipment
}

func (s *stubEquipment) Create(*models.Equipment) error { return nil }
func (s *stubEquipment) GetByUUID(string) (*models.Equipment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubEquipment) GetByUUIDForVendor(string, uint) (*models.Equipment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubEquipment) ListByVendor(uint) ([]models.Equipment, error) { return nil, nil }
func (s *stubEquipment) ListActiveListings(equipmentType string, maxDayRate *float64) ([]models.Equipment, error) {
	// Type and rate filtering happen in SQL in production; mirror the type
	// filter here so tests can exercise it.
	var out []models.Equipment
	for _, e := range s.listings {
		if equipmentType != "" && e.Type != equipmentType {
			continue
		}
		if maxDayRate != nil && e.RateDayMin != nil && *e.RateDayMin > *maxDayRate {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
func (s *stubEquipment) Update(*models.Equipment) error              { return nil }
func (s *stubEquipment) Delete(uint) error                           { return nil }
func (s *stubEquipment) SaveAvailability(*models.Availability) error { return nil }
func (s *stubEquipment) Count() (int64, error)                       { return 0, nil }

func coord(v float64) *float64 { return &v }

func listing(uuid string, vendor models.Vendor, status string, lastUpdated time.Time) models.Equipment {
	return models.Equipment{
		UUID:   uuid,
		Type:   models.EquipmentTypeCTL,
		Vendor: vendor,
		Availability: &models.Availability{
			Status:      status,
			LastUpdated: lastUpdated,
		},
	}
}

func TestSearchRankingOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sponsored := models.Vendor{UUID: "v-sponsored", Name: "Sponsored", IsSponsored: true}
	plain := models.Vendor{UUID: "v-plain", Name: "Plain"}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("unavailable-sponsored", sponsored, models.AvailabilityUnavailable, now),
		listing("available-plain", plain, models.AvailabilityAvailable, now.Add(-time.Hour)),
		listing("available-plain-fresh", plain, models.AvailabilityAvailable, now),
		listing("limited-sponsored", sponsored, models.AvailabilityLimited, now),
		listing("available-sponsored", sponsored, models.AvailabilityAvailable, now.Add(-2*time.Hour)),
		listing("unknown-plain", plain, models.AvailabilityUnknown, now),
	}}

	results, err := NewEngine(repo).Search(Params{})
	require.NoError(t, err)
	require.Len(t, results, 6)

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.ID)
	}

	// Sponsored block first ordered by availability, then the rest.
	assert.Equal(t, []string{
		"available-sponsored",
		"limited-sponsored",
		"unavailable-sponsored",
		"available-plain-fresh",
		"available-plain",
		"unknown-plain",
	}, got)
}

func TestSearchRankingIsStable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	vendor := models.Vendor{UUID: "v", Name: "V"}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("first", vendor, models.AvailabilityAvailable, now),
		listing("second", vendor, models.AvailabilityAvailable, now),
		listing("third", vendor, models.AvailabilityAvailable, now),
	}}

	for i := 0; i < 5; i++ {
		results, err := NewEngine(repo).Search(Params{})
		require.NoError(t, err)
		assert.Equal(t, "first", results[0].ID)
		assert.Equal(t, "second", results[1].ID)
		assert.Equal(t, "third", results[2].ID)
	}
}

func TestSearchRadiusFiltering(t *testing.T) {
	now := time.Now()
	// Caller searches from downtown Austin with the default 40 mile radius.
	nearVendor := models.Vendor{UUID: "near", YardLat: coord(30.3781), YardLng: coord(-97.6814)}
	farVendor := models.Vendor{UUID: "far", YardLat: coord(29.4241), YardLng: coord(-98.4936)} // San Antonio, ~70 mi
	noCoords := models.Vendor{UUID: "nocoords"}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("near-listing", nearVendor, models.AvailabilityAvailable, now),
		listing("far-listing", farVendor, models.AvailabilityAvailable, now),
		listing("nocoords-listing", noCoords, models.AvailabilityAvailable, now),
	}}

	results, err := NewEngine(repo).Search(Params{Lat: coord(30.2672), Lng: coord(-97.7431)})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "near-listing", results[0].ID)
	require.NotNil(t, results[0].Distance)
	assert.Less(t, *results[0].Distance, DefaultRadiusMiles)
}

func TestSearchWithoutGeoPointKeepsCoordlessVendors(t *testing.T) {
	now := time.Now()
	noCoords := models.Vendor{UUID: "nocoords"}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("nocoords-listing", noCoords, models.AvailabilityAvailable, now),
	}}

	results, err := NewEngine(repo).Search(Params{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Nil(t, results[0].Distance)
}

func TestSearchAvailableOnly(t *testing.T) {
	now := time.Now()
	vendor := models.Vendor{UUID: "v"}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("available", vendor, models.AvailabilityAvailable, now),
		listing("limited", vendor, models.AvailabilityLimited, now),
		listing("unknown", vendor, models.AvailabilityUnknown, now),
		listing("unavailable", vendor, models.AvailabilityUnavailable, now),
	}}

	results, err := NewEngine(repo).Search(Params{AvailableOnly: true})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "available", results[0].ID)
	assert.Equal(t, "limited", results[1].ID)
}

func TestSearchCustomRadius(t *testing.T) {
	now := time.Now()
	farVendor := models.Vendor{UUID: "far", YardLat: coord(29.4241), YardLng: coord(-98.4936)}

	repo := &stubEquipment{listings: []models.Equipment{
		listing("far-listing", farVendor, models.AvailabilityAvailable, now),
	}}

	results, err := NewEngine(repo).Search(Params{
		Lat: coord(30.2672), Lng: coord(-97.7431), RadiusMiles: 100,
	})
	require.NoError(t, err)

	require.Len(t, results, 1)
}

func TestSearchMaxDayRateKeepsUnpricedListings(t *testing.T) {
	now := time.Now()
	vendor := models.Vendor{UUID: "v"}

	unpriced := listing("unpriced", vendor, models.AvailabilityAvailable, now)
	cheap := listing("cheap", vendor, models.AvailabilityAvailable, now)
	cheap.RateDayMin = coord(250)
	pricey := listing("pricey", vendor, models.AvailabilityAvailable, now)
	pricey.RateDayMin = coord(400)

	repo := &stubEquipment{listings: []models.Equipment{unpriced, cheap, pricey}}

	results, err := NewEngine(repo).Search(Params{MaxDayRate: coord(300)})
	require.NoError(t, err)

	require.Len(t, results, 2)
	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "unpriced")
	assert.Contains(t, ids, "cheap")
}

func TestSearchMissingAvailabilityTreatedAsUnknown(t *testing.T) {
	vendor := models.Vendor{UUID: "v"}
	eq := models.Equipment{UUID: "bare", Type: models.EquipmentTypeSkid, Vendor: vendor}

	results, err := NewEngine(&stubEquipment{listings: []models.Equipment{eq}}).Search(Params{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, models.AvailabilityUnknown, results[0].Availability)
}
