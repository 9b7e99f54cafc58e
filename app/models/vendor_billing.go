package models

import (
	"time"
)

// DefaultCPCRate is charged per billable contact event when a vendor has no
// billing record of its own.
const DefaultCPCRate = 15.0

// VendorBilling holds the per-vendor cost-per-click configuration. At most
// one row per vendor; created lazily on the first admin rate change.
type VendorBilling struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VendorID  uint      `gorm:"uniqueIndex;not null" json:"vendor_id"`
	CPCRate   float64   `gorm:"type:decimal(10,2);default:15.00" json:"cpc_rate" validate:"gte=0"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// EffectiveCPCRate resolves the rate that applies to a vendor, falling back
// to the platform default when no billing row exists.
func EffectiveCPCRate(b *VendorBilling) float64 {
	if b == nil {
		return DefaultCPCRate
	}
	return b.CPCRate
}
