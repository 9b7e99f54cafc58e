package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

// contactEventRepository implements the ContactEventRepository interface
type contactEventRepository struct {
	db *gorm.DB
}

// NewContactEventRepository creates a new contact event repository instance
func NewContactEventRepository(db *gorm.DB) ContactEventRepository {
	return &contactEventRepository{db: db}
}

func (r *contactEventRepository) Create(event *models.ContactEvent) error {
	return r.db.Create(event).Error
}

// FindByDedupeKeySince returns the newest ledger entry carrying dedupeKey
// written at or after since, or nil when none exists.
func (r *contactEventRepository) FindByDedupeKeySince(dedupeKey string, since time.Time) (*models.ContactEvent, error) {
	var event models.ContactEvent
	err := r.db.Where("dedupe_key = ? AND created_at >= ?", dedupeKey, since).
		Order("created_at DESC").First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListBillableSince loads the billable slice of the ledger for aggregation.
// Only the columns the aggregator groups on are selected.
func (r *contactEventRepository) ListBillableSince(since time.Time) ([]models.ContactEvent, error) {
	var events []models.ContactEvent
	err := r.db.Select("vendor_id", "event_type").
		Where("is_billable = ? AND created_at >= ?", true, since).
		Find(&events).Error
	return events, err
}

func (r *contactEventRepository) CountByVendor(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactEvent{}).
		Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}

func (r *contactEventRepository) CountByVendorSince(vendorID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactEvent{}).
		Where("vendor_id = ? AND created_at >= ?", vendorID, since).Count(&count).Error
	return count, err
}

func (r *contactEventRepository) CountBillableByVendorSince(vendorID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactEvent{}).
		Where("vendor_id = ? AND is_billable = ? AND created_at >= ?", vendorID, true, since).
		Count(&count).Error
	return count, err
}

func (r *contactEventRepository) TypeCountsByVendor(vendorID uint) ([]EventTypeCount, error) {
	var rows []EventTypeCount
	err := r.db.Model(&models.ContactEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("vendor_id = ?", vendorID).
		Group("event_type").
		Scan(&rows).Error
	return rows, err
}

func (r *contactEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactEvent{}).Count(&count).Error
	return count, err
}
