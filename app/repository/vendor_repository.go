package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HawgLeg/equipscout/app/models"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) GetByUUID(uuid string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Preload("Billing").Where("uuid = ?", uuid).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) GetByUUIDWithEquipment(uuid string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Preload("Equipment").Preload("Equipment.Availability").
		Where("uuid = ?", uuid).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) GetByAPIKeyHash(hash string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("api_key_hash = ?", hash).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// ListWithCounts returns every vendor together with its equipment, lead and
// contact event counts, newest vendor first.
func (r *vendorRepository) ListWithCounts() ([]VendorWithCounts, error) {
	var rows []VendorWithCounts
	err := r.db.Model(&models.Vendor{}).
		Select(`vendors.*,
			(SELECT COUNT(*) FROM equipment WHERE equipment.vendor_id = vendors.id AND equipment.deleted_at IS NULL) AS equipment_count,
			(SELECT COUNT(*) FROM lead_requests WHERE lead_requests.vendor_id = vendors.id) AS lead_request_count,
			(SELECT COUNT(*) FROM contact_events WHERE contact_events.vendor_id = vendors.id) AS contact_event_count`).
		Order("vendors.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *vendorRepository) ListWithBilling() ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Preload("Billing").Order("name ASC").Find(&vendors).Error
	return vendors, err
}

// UpsertBilling writes the per-vendor CPC rate, creating the billing row on
// first use.
func (r *vendorRepository) UpsertBilling(vendorID uint, cpcRate float64) (*models.VendorBilling, error) {
	billing := models.VendorBilling{VendorID: vendorID, CPCRate: cpcRate}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cpc_rate"}),
	}).Create(&billing).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("vendor_id = ?", vendorID).First(&billing).Error; err != nil {
		return nil, err
	}
	return &billing, nil
}

func (r *vendorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Count(&count).Error
	return count, err
}

func (r *vendorRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
