package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContactEventCall    = "CALL"
	ContactEventText    = "TEXT"
	ContactEventEmail   = "EMAIL"
	ContactEventWebsite = "WEBSITE"
	ContactEventRequest = "REQUEST"
)

func IsValidContactEventType(t string) bool {
	switch t {
	case ContactEventCall, ContactEventText, ContactEventEmail, ContactEventWebsite, ContactEventRequest:
		return true
	}
	return false
}

// ContactEvent is an append-only ledger entry and the sole source of truth
// for pay-per-click billing. IsBillable is fixed at creation and never
// revised. Rows are never updated or deleted.
type ContactEvent struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UUID        string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	VendorID    uint   `gorm:"index;not null" json:"vendor_id"`
	EquipmentID *uint  `gorm:"index" json:"equipment_id"`
	EventType   string `gorm:"type:varchar(20);not null" json:"event_type"`

	SessionID     string `gorm:"type:varchar(64);default:null" json:"session_id,omitempty"`
	IPHash        string `gorm:"type:char(32);default:null" json:"-"`
	UserAgentHash string `gorm:"type:char(32);default:null" json:"-"`

	// DedupeKey fingerprints (vendor, equipment, event type, session,
	// 30-minute time bucket). The unique index is what makes at-most-once
	// billing hold across concurrent writers: the second insert with the
	// same key fails instead of producing a second billable row. Nil on the
	// legacy write path, which never dedupes.
	DedupeKey  *string `gorm:"type:char(32);uniqueIndex" json:"-"`
	TimeBucket int64   `gorm:"default:0" json:"-"`

	IsBillable bool `gorm:"not null;index" json:"is_billable"`

	// Search context captured with the click, analytics only.
	SearchLocationText string   `gorm:"type:varchar(255);default:null" json:"search_location_text,omitempty"`
	SearchRadius       *float64 `gorm:"type:double" json:"search_radius,omitempty"`
	NeedDate           string   `gorm:"type:varchar(20);default:null" json:"need_date,omitempty"`
	Referrer           string   `gorm:"type:varchar(255);default:null" json:"referrer,omitempty"`
	SearchParamsJSON   string   `gorm:"type:text" json:"search_params_json,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (e *ContactEvent) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New().String()
	}
	return nil
}
