package models

import (
	"time"
)

const (
	AuditActionSignup      = "signup"
	AuditActionListingEdit = "listing_edit"
	AuditActionAdminAction = "admin_action"
)

// AuditLog records who changed what. Writes are best-effort: a failed audit
// insert is logged and never fails the request that caused it.
type AuditLog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	VendorID *uint  `gorm:"index" json:"vendor_id,omitempty"`
	Actor    string `gorm:"type:varchar(100);default:null" json:"actor"`
	Action   string `gorm:"type:varchar(50);not null" json:"action"`
	Details  string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
