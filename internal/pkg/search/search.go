// Package search implements the geo-radius listing search and its ranking:
// sponsored placement first, then availability, then freshness.
package search

import (
	"sort"
	"time"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/geo"
)

// DefaultRadiusMiles bounds the search when the caller gives a geo point
// without an explicit radius.
const DefaultRadiusMiles = 40.0

// Params are the caller-supplied search filters.
type Params struct {
	EquipmentType string
	Lat           *float64
	Lng           *float64
	RadiusMiles   float64
	NeedDate      string
	MaxDayRate    *float64
	AvailableOnly bool
}

// HasGeoPoint reports whether distance filtering applies.
func (p Params) HasGeoPoint() bool {
	return p.Lat != nil && p.Lng != nil
}

// Listing is one search result row: equipment joined with its vendor and
// availability, plus the computed distance to the caller's point. Distance
// is nil when no geo point was given or the vendor yard has no coordinates.
type Listing struct {
	ID            string     `json:"id"`
	VendorID      string     `json:"vendor_id"`
	VendorName    string     `json:"vendor_name"`
	VendorPhone   string     `json:"vendor_phone"`
	VendorEmail   string     `json:"vendor_email"`
	VendorWebsite string     `json:"vendor_website,omitempty"`
	IsSponsored   bool       `json:"is_sponsored"`
	Type          string     `json:"type"`
	SizeClass     string     `json:"size_class,omitempty"`
	Make          string     `json:"make,omitempty"`
	Model         string     `json:"model,omitempty"`
	Year          *int       `json:"year"`
	RateHourMin   *float64   `json:"rate_hour_min"`
	RateHourMax   *float64   `json:"rate_hour_max"`
	RateDayMin    *float64   `json:"rate_day_min"`
	RateDayMax    *float64   `json:"rate_day_max"`
	Notes         string     `json:"notes,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Availability  string     `json:"availability_status"`
	EarliestDate  *time.Time `json:"earliest_date"`
	LastUpdated   time.Time  `json:"last_updated"`
	Distance      *float64   `json:"distance"`
}

// Engine is the read-only search path over listing, availability and vendor
// data. It touches neither the ledger nor billing.
type Engine struct {
	equipment repository.EquipmentRepository
}

// NewEngine creates a search engine over the equipment repository.
func NewEngine(equipment repository.EquipmentRepository) *Engine {
	return &Engine{equipment: equipment}
}

// Search loads candidate listings, applies the radius and availability
// filters and returns them ranked.
func (e *Engine) Search(params Params) ([]Listing, error) {
	if params.RadiusMiles <= 0 {
		params.RadiusMiles = DefaultRadiusMiles
	}

	equipment, err := e.equipment.ListActiveListings(params.EquipmentType, params.MaxDayRate)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(equipment))
	for _, eq := range equipment {
		listings = append(listings, buildListing(eq, params))
	}

	listings = applyFilters(listings, params)
	Rank(listings)
	return listings, nil
}

func buildListing(eq models.Equipment, params Params) Listing {
	l := Listing{
		ID:            eq.UUID,
		VendorID:      eq.Vendor.UUID,
		VendorName:    eq.Vendor.Name,
		VendorPhone:   eq.Vendor.Phone,
		VendorEmail:   eq.Vendor.Email,
		VendorWebsite: eq.Vendor.Website,
		IsSponsored:   eq.Vendor.IsSponsored,
		Type:          eq.Type,
		SizeClass:     eq.SizeClass,
		Make:          eq.Make,
		Model:         eq.Model,
		Year:          eq.Year,
		RateHourMin:   eq.RateHourMin,
		RateHourMax:   eq.RateHourMax,
		RateDayMin:    eq.RateDayMin,
		RateDayMax:    eq.RateDayMax,
		Notes:         eq.Notes,
		ImageURL:      eq.ImageURL,
		Availability:  models.AvailabilityUnknown,
		LastUpdated:   eq.UpdatedAt,
	}

	if eq.Availability != nil {
		l.Availability = eq.Availability.Status
		l.EarliestDate = eq.Availability.EarliestDate
		l.LastUpdated = eq.Availability.LastUpdated
	}

	if params.HasGeoPoint() && eq.Vendor.HasYardCoordinates() {
		d := geo.Distance(*params.Lat, *params.Lng, *eq.Vendor.YardLat, *eq.Vendor.YardLng)
		l.Distance = &d
	}

	return l
}

// applyFilters drops listings outside the radius and, when asked, listings
// that are not rentable. With a geo point present, a nil distance (vendor
// without yard coordinates) never satisfies the radius check; without one,
// nil distances pass untouched.
func applyFilters(listings []Listing, params Params) []Listing {
	filtered := listings[:0]
	for _, l := range listings {
		if params.HasGeoPoint() && (l.Distance == nil || *l.Distance > params.RadiusMiles) {
			continue
		}
		if params.AvailableOnly &&
			l.Availability != models.AvailabilityAvailable &&
			l.Availability != models.AvailabilityLimited {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}

// Rank orders listings in place: sponsored first, then availability
// priority ascending, then most recently updated. The sort is stable so
// identical queries return identical orderings.
func Rank(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]

		if a.IsSponsored != b.IsSponsored {
			return a.IsSponsored
		}

		aPriority := models.AvailabilityPriority(a.Availability)
		bPriority := models.AvailabilityPriority(b.Availability)
		if aPriority != bPriority {
			return aPriority < bPriority
		}

		return a.LastUpdated.After(b.LastUpdated)
	})
}
