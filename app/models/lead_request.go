package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadRequest is a structured inbound inquiry to a vendor. Append-only and
// billing-neutral; the billable signal is the REQUEST contact event fired
// alongside it.
type LeadRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UUID        string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	VendorID    uint   `gorm:"index;not null" json:"vendor_id"`
	EquipmentID *uint  `gorm:"index" json:"equipment_id"`

	RequesterName  string `gorm:"type:varchar(150);default:null" json:"requester_name"`
	RequesterPhone string `gorm:"type:varchar(50);default:null" json:"requester_phone"`
	RequesterEmail string `gorm:"type:varchar(200);default:null" json:"requester_email" validate:"omitempty,email"`
	Message        string `gorm:"type:text" json:"message"`

	JobsiteLocationText string   `gorm:"type:varchar(255);default:null" json:"jobsite_location_text"`
	Radius              *float64 `gorm:"type:double" json:"radius"`
	NeedDate            string   `gorm:"type:varchar(20);default:null" json:"need_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *LeadRequest) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}

func (l *LeadRequest) Validate() error {
	return validator.New().Struct(l)
}
