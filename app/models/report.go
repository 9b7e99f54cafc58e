package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

func IsValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusDismissed:
		return true
	}
	return false
}

// Report flags an equipment listing or a vendor. Created pending by any
// user; only admins move it to reviewed/dismissed.
type Report struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UUID        string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	EquipmentID *uint  `gorm:"index" json:"equipment_id"`
	VendorID    *uint  `gorm:"index" json:"vendor_id"`

	Reason     string     `gorm:"type:varchar(100);default:'outdated'" json:"reason"`
	Status     string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewedAt *time.Time `gorm:"type:timestamp;default:null" json:"reviewed_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return nil
}
