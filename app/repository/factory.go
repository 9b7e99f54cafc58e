package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetVendorRepository returns the vendor repository instance
func (f *Factory) GetVendorRepository() VendorRepository {
	return f.GetRepositories().Vendor
}

// GetEquipmentRepository returns the equipment repository instance
func (f *Factory) GetEquipmentRepository() EquipmentRepository {
	return f.GetRepositories().Equipment
}

// GetContactEventRepository returns the contact event ledger repository instance
func (f *Factory) GetContactEventRepository() ContactEventRepository {
	return f.GetRepositories().ContactEvent
}

// GetLeadRequestRepository returns the lead request repository instance
func (f *Factory) GetLeadRequestRepository() LeadRequestRepository {
	return f.GetRepositories().LeadRequest
}

// GetReportRepository returns the report repository instance
func (f *Factory) GetReportRepository() ReportRepository {
	return f.GetRepositories().Report
}

// GetAuditLogRepository returns the audit log repository instance
func (f *Factory) GetAuditLogRepository() AuditLogRepository {
	return f.GetRepositories().AuditLog
}

var globalFactory *Factory

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	globalFactory = NewFactory(db)
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}

// SetGlobalRepositories replaces the global repository set, used by tests to
// install fakes.
func SetGlobalRepositories(repos *Repositories) {
	f := &Factory{repos: repos}
	f.once.Do(func() {})
	globalFactory = f
}
