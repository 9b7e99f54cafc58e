package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/internal/pkg/database"
	"github.com/HawgLeg/equipscout/internal/pkg/env"
)

type seedVendor struct {
	Name        string
	Phone       string
	Email       string
	Website     string
	YardAddress string
	YardLat     float64
	YardLng     float64
	PlanStatus  string
	IsSponsored bool
}

type seedEquipment struct {
	VendorIndex int
	Type        string
	Make        string
	Model       string
	SizeClass   string
	RateDayMin  *float64
	RateDayMax  *float64
	RateHourMin *float64
	RateHourMax *float64
}

func rate(v float64) *float64 { return &v }

// Austin-area rental companies with direct rental page links.
var seedVendors = []seedVendor{
	{"United Rentals - North Austin", "(844) 873-4948", "customerservice@ur.com", "https://www.unitedrentals.com/marketplace/equipment/earthmoving-equipment/skid-steers-compact-track-loaders", "10300 N Interstate 35 Frontage, Austin, TX 78753", 30.3781, -97.6814, models.PlanPro, true},
	{"United Rentals - South Austin", "(844) 873-4948", "customerservice+south@ur.com", "https://www.unitedrentals.com/marketplace/equipment/earthmoving-equipment/skid-steers-compact-track-loaders", "3506 Chapman Ln, Austin, TX 78744", 30.2052, -97.7394, models.PlanPro, true},
	{"Jon's Rental", "(512) 331-1212", "info@jonsrental.com", "https://www.jonsrental.com/skid-steer-rental-austin/", "13280 Pond Springs Road, Austin, TX 78729", 30.4561, -97.7922, models.PlanPro, false},
	{"Texas First Rentals - Pflugerville", "(512) 994-2257", "info@texasfirstrentals.com", "https://www.texasfirstrentals.com/equipment/category/skid-steers-and-ctls", "16017 N IH 35, Pflugerville, TX 78660", 30.4515, -97.6089, models.PlanPro, false},
	{"Texas First Rentals - South Austin", "(512) 292-5050", "info+south@texasfirstrentals.com", "https://www.texasfirstrentals.com/equipment/category/skid-steers-and-ctls", "6005 S 183 Hwy NB, Austin, TX 78744", 30.1894, -97.7828, models.PlanFree, false},
	{"HOLT CAT Austin", "(512) 282-2011", "rental@holtcat.com", "https://www.holtcat.com/contact_us/store_locator/austin/equipment_rental", "2121 W Howard Ln, Austin, TX 78728", 30.4493, -97.6892, models.PlanPro, false},
	{"Bobcat of Austin", "(512) 251-3415", "rentals@bobcatcce.com", "https://www.bobcatcce.com/rentals", "16336 N IH 35, Austin, TX 78728", 30.4581, -97.6584, models.PlanPro, false},
	{"Sunbelt Rentals - North Austin", "(512) 676-3393", "customerservice@sunbeltrentals.com", "https://www.sunbeltrentals.com/equipment-rental/earth-moving/skidsteer-loaders/", "16256 N Interstate 35, Austin, TX 78728", 30.4567, -97.6589, models.PlanFree, false},
	{"Sunbelt Rentals - South Austin", "(512) 445-7368", "customerservice+south@sunbeltrentals.com", "https://www.sunbeltrentals.com/equipment-rental/earth-moving/skidsteer-loaders/", "8300 S Interstate 35, Austin, TX 78745", 30.1892, -97.7689, models.PlanFree, false},
	{"BigRentz Austin", "(888) 325-5172", "support@bigrentz.com", "https://www.bigrentz.com/rental-locations/texas/austin/skid-steers", "Austin, TX (Delivery Service)", 30.2672, -97.7431, models.PlanFree, false},
}

// Rates sourced from vendor websites where published.
var seedListings = []seedEquipment{
	{0, models.EquipmentTypeCTL, "Caterpillar", "259D3", models.SizeClassMedium, rate(350), rate(425), rate(85), rate(110)},
	{0, models.EquipmentTypeSkid, "Caterpillar", "262D3", models.SizeClassMedium, rate(300), rate(375), rate(75), rate(95)},
	{0, models.EquipmentTypeExcavator, "Caterpillar", "308 CR", models.SizeClassMedium, rate(450), rate(550), rate(115), rate(145)},
	{0, models.EquipmentTypeDozer, "Caterpillar", "D3K2", models.SizeClassSmall, rate(550), rate(650), rate(140), rate(175)},
	{0, models.EquipmentTypeForklift, "JLG", "G5-18A", models.SizeClassMedium, rate(275), rate(350), rate(70), rate(95)},

	{1, models.EquipmentTypeCTL, "Caterpillar", "289D3", models.SizeClassLarge, rate(400), rate(485), rate(100), rate(125)},
	{1, models.EquipmentTypeSkid, "Caterpillar", "272D3", models.SizeClassLarge, rate(340), rate(420), rate(90), rate(115)},
	{1, models.EquipmentTypeExcavator, "Caterpillar", "320 GC", models.SizeClassLarge, rate(850), rate(1100), rate(210), rate(285)},
	{1, models.EquipmentTypeBackhoe, "Caterpillar", "420F2", models.SizeClassMedium, rate(325), rate(425), rate(85), rate(115)},
	{1, models.EquipmentTypeTelehandler, "JLG", "1055", models.SizeClassLarge, rate(400), rate(500), rate(100), rate(135)},

	{2, models.EquipmentTypeSkid, "Bobcat", "S650", models.SizeClassMedium, rate(250), rate(300), rate(65), rate(85)},
	{2, models.EquipmentTypeCTL, "Bobcat", "T650", models.SizeClassMedium, rate(275), rate(325), rate(70), rate(90)},
	{2, models.EquipmentTypeExcavator, "Bobcat", "E35", models.SizeClassSmall, rate(300), rate(375), rate(78), rate(98)},

	{3, models.EquipmentTypeCTL, "Caterpillar", "299D3 XE", models.SizeClassLarge, rate(450), rate(525), rate(115), rate(140)},
	{3, models.EquipmentTypeSkid, "Caterpillar", "246D3", models.SizeClassSmall, rate(275), rate(325), rate(70), rate(85)},
	{3, models.EquipmentTypeDozer, "Caterpillar", "D5K2", models.SizeClassMedium, rate(750), rate(925), rate(185), rate(240)},
	{3, models.EquipmentTypeGrader, "Caterpillar", "120", models.SizeClassMedium, rate(850), rate(1050), rate(215), rate(275)},

	{4, models.EquipmentTypeCTL, "Caterpillar", "259D3", models.SizeClassMedium, rate(350), rate(400), rate(85), rate(105)},
	{4, models.EquipmentTypeRoller, "Caterpillar", "CB2.7", models.SizeClassSmall, rate(225), rate(295), rate(58), rate(78)},
	{4, models.EquipmentTypeLoader, "Caterpillar", "930M", models.SizeClassMedium, rate(650), rate(800), rate(165), rate(210)},

	{5, models.EquipmentTypeCTL, "Caterpillar", "289D3", models.SizeClassLarge, rate(400), rate(475), rate(95), rate(120)},
	{5, models.EquipmentTypeCTL, "Caterpillar", "299D3", models.SizeClassLarge, rate(450), rate(525), rate(110), rate(135)},
	{5, models.EquipmentTypeSkid, "Caterpillar", "262D3", models.SizeClassMedium, rate(325), rate(385), rate(80), rate(100)},
	{5, models.EquipmentTypeExcavator, "Caterpillar", "336", models.SizeClassLarge, rate(1200), rate(1500), rate(300), rate(395)},
	{5, models.EquipmentTypeDozer, "Caterpillar", "D6K2", models.SizeClassLarge, rate(950), rate(1200), rate(240), rate(315)},
	{5, models.EquipmentTypeCrane, "Caterpillar", "Crane Service", models.SizeClassLarge, rate(2500), rate(3500), rate(625), rate(900)},

	{6, models.EquipmentTypeCTL, "Bobcat", "T770", models.SizeClassLarge, rate(400), rate(485), rate(100), rate(125)},
	{6, models.EquipmentTypeCTL, "Bobcat", "T590", models.SizeClassMedium, rate(285), rate(350), rate(75), rate(95)},
	{6, models.EquipmentTypeSkid, "Bobcat", "S770", models.SizeClassLarge, rate(280), rate(340), rate(75), rate(95)},
	{6, models.EquipmentTypeSkid, "Bobcat", "S650", models.SizeClassMedium, rate(200), rate(260), rate(55), rate(75)},
	{6, models.EquipmentTypeSkid, "Bobcat", "S450", models.SizeClassSmall, rate(160), rate(200), rate(45), rate(60)},
	{6, models.EquipmentTypeExcavator, "Bobcat", "E85", models.SizeClassMedium, rate(475), rate(575), rate(120), rate(150)},
	{6, models.EquipmentTypeExcavator, "Bobcat", "E50", models.SizeClassSmall, rate(350), rate(425), rate(90), rate(115)},
	{6, models.EquipmentTypeTelehandler, "Bobcat", "TL30.70", models.SizeClassMedium, rate(350), rate(425), rate(90), rate(115)},

	{7, models.EquipmentTypeCTL, "Kubota", "SVL75-2", models.SizeClassMedium, rate(335), rate(395), rate(82), rate(102)},
	{7, models.EquipmentTypeSkid, "Kubota", "SSV75", models.SizeClassMedium, rate(295), rate(350), rate(75), rate(92)},
	{7, models.EquipmentTypeExcavator, "Kubota", "KX080-4", models.SizeClassMedium, rate(425), rate(525), rate(108), rate(138)},
	{7, models.EquipmentTypeForklift, "Toyota", "8FGU25", models.SizeClassMedium, rate(175), rate(225), rate(45), rate(60)},
	{7, models.EquipmentTypeDumpTruck, "Various", "Articulated Dump", models.SizeClassLarge, rate(950), rate(1250), rate(240), rate(325)},

	{8, models.EquipmentTypeCTL, "John Deere", "333G", models.SizeClassLarge, rate(425), rate(495), rate(105), rate(128)},
	{8, models.EquipmentTypeSkid, "John Deere", "332G", models.SizeClassLarge, rate(375), rate(445), rate(92), rate(115)},
	{8, models.EquipmentTypeBackhoe, "John Deere", "310SL", models.SizeClassMedium, rate(325), rate(400), rate(85), rate(105)},
	{8, models.EquipmentTypeLoader, "John Deere", "544L", models.SizeClassLarge, rate(750), rate(950), rate(190), rate(250)},
	{8, models.EquipmentTypeRoller, "Bomag", "BW177D-5", models.SizeClassMedium, rate(375), rate(475), rate(95), rate(125)},

	{9, models.EquipmentTypeSkid, "Various", "Small Frame (1100-1449 lb)", models.SizeClassSmall, rate(104), rate(150), nil, nil},
	{9, models.EquipmentTypeSkid, "Various", "Medium Frame (1500-1999 lb)", models.SizeClassMedium, rate(227), rate(300), nil, nil},
	{9, models.EquipmentTypeSkid, "Various", "Large Frame (2000+ lb)", models.SizeClassLarge, rate(368), rate(450), nil, nil},
	{9, models.EquipmentTypeExcavator, "Various", "Mini Excavator (3-6 ton)", models.SizeClassSmall, rate(250), rate(350), nil, nil},
	{9, models.EquipmentTypeExcavator, "Various", "Midi Excavator (7-10 ton)", models.SizeClassMedium, rate(400), rate(525), nil, nil},
	{9, models.EquipmentTypeForklift, "Various", "Warehouse Forklift (5000 lb)", models.SizeClassMedium, rate(150), rate(200), nil, nil},
	{9, models.EquipmentTypeTelehandler, "Various", "Telehandler (8000 lb)", models.SizeClassLarge, rate(350), rate(450), nil, nil},
	{9, models.EquipmentTypeCrane, "Various", "Rough Terrain Crane", models.SizeClassLarge, rate(1500), rate(2200), nil, nil},
}

func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	db := database.GetDB()

	log.Println("Seeding database with Austin-area rental data")

	// Clear existing data, children first.
	for _, model := range []interface{}{
		&models.ContactEvent{}, &models.LeadRequest{}, &models.Availability{},
		&models.Equipment{}, &models.AuditLog{}, &models.Report{},
		&models.VendorBilling{}, &models.Vendor{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			log.Fatalf("Failed to clear existing data: %v", err)
		}
	}

	vendors := make([]*models.Vendor, 0, len(seedVendors))
	for _, sv := range seedVendors {
		lat, lng := sv.YardLat, sv.YardLng
		vendor := &models.Vendor{
			Name:          sv.Name,
			Phone:         sv.Phone,
			Email:         sv.Email,
			Website:       sv.Website,
			YardAddress:   sv.YardAddress,
			YardLat:       &lat,
			YardLng:       &lng,
			PlanStatus:    sv.PlanStatus,
			IsSponsored:   sv.IsSponsored,
			IsActive:      true,
			BillingStatus: models.BillingStatusActive,
		}
		if err := db.Create(vendor).Error; err != nil {
			log.Fatalf("Failed to create vendor %s: %v", sv.Name, err)
		}
		vendors = append(vendors, vendor)
		log.Printf("Created vendor %s (%s)", vendor.Name, vendor.YardAddress)
	}

	count := 0
	for _, se := range seedListings {
		vendor := vendors[se.VendorIndex]
		equip := &models.Equipment{
			VendorID:    vendor.ID,
			Type:        se.Type,
			SizeClass:   se.SizeClass,
			Make:        se.Make,
			Model:       se.Model,
			RateDayMin:  se.RateDayMin,
			RateDayMax:  se.RateDayMax,
			RateHourMin: se.RateHourMin,
			RateHourMax: se.RateHourMax,
		}
		if err := db.Create(equip).Error; err != nil {
			log.Fatalf("Failed to create equipment %s %s: %v", se.Make, se.Model, err)
		}

		availability := &models.Availability{
			EquipmentID: equip.ID,
		}
		status, earliestDate, lastUpdated := randomAvailability()
		availability.Status = status
		availability.EarliestDate = earliestDate
		availability.LastUpdated = lastUpdated
		if err := db.Create(availability).Error; err != nil {
			log.Fatalf("Failed to create availability for %s %s: %v", se.Make, se.Model, err)
		}
		count++
	}

	log.Printf("Seed complete: %d vendors, %d equipment listings", len(vendors), count)
}

// randomAvailability weights towards AVAILABLE and LIMITED so search results
// look realistic, with fresher lastUpdated for the better statuses.
func randomAvailability() (string, *time.Time, time.Time) {
	r := rand.Float64()
	var status string
	var maxAgeDays int
	switch {
	case r < 0.4:
		status, maxAgeDays = models.AvailabilityAvailable, 3
	case r < 0.7:
		status, maxAgeDays = models.AvailabilityLimited, 10
	case r < 0.9:
		status, maxAgeDays = models.AvailabilityUnknown, 25
	default:
		status, maxAgeDays = models.AvailabilityUnavailable, 25
	}

	lastUpdated := time.Now().AddDate(0, 0, -rand.Intn(maxAgeDays))

	var earliestDate *time.Time
	if status == models.AvailabilityLimited {
		d := time.Now().AddDate(0, 0, rand.Intn(5)+1)
		earliestDate = &d
	}
	return status, earliestDate, lastUpdated
}
