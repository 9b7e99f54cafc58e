package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

// leadRequestRepository implements the LeadRequestRepository interface
type leadRequestRepository struct {
	db *gorm.DB
}

// NewLeadRequestRepository creates a new lead request repository instance
func NewLeadRequestRepository(db *gorm.DB) LeadRequestRepository {
	return &leadRequestRepository{db: db}
}

func (r *leadRequestRepository) Create(lead *models.LeadRequest) error {
	return r.db.Create(lead).Error
}

func (r *leadRequestRepository) CountByVendor(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadRequest{}).
		Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}

func (r *leadRequestRepository) CountByVendorSince(vendorID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadRequest{}).
		Where("vendor_id = ? AND created_at >= ?", vendorID, since).Count(&count).Error
	return count, err
}

func (r *leadRequestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.LeadRequest{}).Count(&count).Error
	return count, err
}
