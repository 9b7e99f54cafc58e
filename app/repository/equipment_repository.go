package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

// equipmentRepository implements the EquipmentRepository interface
type equipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates a new equipment repository instance
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

// Create inserts the equipment together with its initial availability row.
// Every listing carries exactly one availability, starting UNKNOWN.
func (r *equipmentRepository) Create(equipment *models.Equipment) error {
	if equipment.Availability == nil {
		equipment.Availability = &models.Availability{
			Status:      models.AvailabilityUnknown,
			LastUpdated: time.Now(),
		}
	}
	return r.db.Create(equipment).Error
}

func (r *equipmentRepository) GetByUUID(uuid string) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.db.Preload("Vendor").Preload("Availability").
		Where("uuid = ?", uuid).First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) GetByUUIDForVendor(uuid string, vendorID uint) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.db.Preload("Availability").
		Where("uuid = ? AND vendor_id = ?", uuid, vendorID).First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) ListByVendor(vendorID uint) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.db.Preload("Availability").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").Find(&equipment).Error
	return equipment, err
}

// activeListingQuery narrows equipment to listings from active vendors, with
// an optional exact type match and day-rate ceiling. A listing with no
// day-min rate always passes the ceiling, so unpriced listings stay
// searchable.
func activeListingQuery(db *gorm.DB, equipmentType string, maxDayRate *float64) *gorm.DB {
	query := db.Model(&models.Equipment{}).
		Joins("JOIN vendors ON vendors.id = equipment.vendor_id").
		Where("vendors.is_active = ?", true).
		Where("vendors.deleted_at IS NULL")

	if equipmentType != "" {
		query = query.Where("equipment.type = ?", equipmentType)
	}
	if maxDayRate != nil {
		// Parens are explicit: the OR must bind tighter than the
		// surrounding AND chain.
		query = query.Where("(equipment.rate_day_min IS NULL OR equipment.rate_day_min <= ?)", *maxDayRate)
	}
	return query
}

// ListActiveListings returns searchable equipment with vendor and
// availability attached.
func (r *equipmentRepository) ListActiveListings(equipmentType string, maxDayRate *float64) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := activeListingQuery(r.db, equipmentType, maxDayRate).
		Preload("Vendor").Preload("Availability").
		Find(&equipment).Error
	return equipment, err
}

func (r *equipmentRepository) Update(equipment *models.Equipment) error {
	return r.db.Save(equipment).Error
}

func (r *equipmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Equipment{}, id).Error
}

func (r *equipmentRepository) SaveAvailability(availability *models.Availability) error {
	return r.db.Save(availability).Error
}

func (r *equipmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Equipment{}).Count(&count).Error
	return count, err
}
