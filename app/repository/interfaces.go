package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
)

// VendorWithCounts carries a vendor plus the per-vendor activity counts the
// admin vendor list shows.
type VendorWithCounts struct {
	models.Vendor
	EquipmentCount    int64 `json:"equipment_count"`
	LeadRequestCount  int64 `json:"lead_request_count"`
	ContactEventCount int64 `json:"contact_event_count"`
}

// EventTypeCount is one row of a GROUP BY event_type tally.
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByUUID(uuid string) (*models.Vendor, error)
	GetByUUIDWithEquipment(uuid string) (*models.Vendor, error)
	GetByAPIKeyHash(hash string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	ListWithCounts() ([]VendorWithCounts, error)
	ListWithBilling() ([]models.Vendor, error)
	UpsertBilling(vendorID uint, cpcRate float64) (*models.VendorBilling, error)
	Count() (int64, error)
	CountActive() (int64, error)
}

// EquipmentRepository defines the interface for equipment and availability operations
type EquipmentRepository interface {
	Create(equipment *models.Equipment) error
	GetByUUID(uuid string) (*models.Equipment, error)
	GetByUUIDForVendor(uuid string, vendorID uint) (*models.Equipment, error)
	ListByVendor(vendorID uint) ([]models.Equipment, error)
	ListActiveListings(equipmentType string, maxDayRate *float64) ([]models.Equipment, error)
	Update(equipment *models.Equipment) error
	Delete(id uint) error
	SaveAvailability(availability *models.Availability) error
	Count() (int64, error)
}

// ContactEventRepository defines the interface over the append-only contact
// event ledger. There is deliberately no update or delete.
type ContactEventRepository interface {
	Create(event *models.ContactEvent) error
	FindByDedupeKeySince(dedupeKey string, since time.Time) (*models.ContactEvent, error)
	ListBillableSince(since time.Time) ([]models.ContactEvent, error)
	CountByVendor(vendorID uint) (int64, error)
	CountByVendorSince(vendorID uint, since time.Time) (int64, error)
	CountBillableByVendorSince(vendorID uint, since time.Time) (int64, error)
	TypeCountsByVendor(vendorID uint) ([]EventTypeCount, error)
	Count() (int64, error)
}

// LeadRequestRepository defines the interface for inbound lead inquiries
type LeadRequestRepository interface {
	Create(lead *models.LeadRequest) error
	CountByVendor(vendorID uint) (int64, error)
	CountByVendorSince(vendorID uint, since time.Time) (int64, error)
	Count() (int64, error)
}

// ReportRepository defines the interface for listing reports
type ReportRepository interface {
	Create(report *models.Report) error
	GetByUUID(uuid string) (*models.Report, error)
	Update(report *models.Report) error
	List(status string, limit, offset int) ([]models.Report, error)
	CountByStatus(status string) (int64, error)
}

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Vendor       VendorRepository
	Equipment    EquipmentRepository
	ContactEvent ContactEventRepository
	LeadRequest  LeadRequestRepository
	Report       ReportRepository
	AuditLog     AuditLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:       NewVendorRepository(db),
		Equipment:    NewEquipmentRepository(db),
		ContactEvent: NewContactEventRepository(db),
		LeadRequest:  NewLeadRequestRepository(db),
		Report:       NewReportRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
