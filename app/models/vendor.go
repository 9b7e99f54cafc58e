package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"

	// BillingStatus gates billing aggregation only, never search visibility.
	BillingStatusActive   = "ACTIVE"
	BillingStatusPaused   = "PAUSED"
	BillingStatusOptedOut = "OPTED_OUT"
)

type Vendor struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UUID            string     `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	Name            string     `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Phone           string     `gorm:"type:varchar(50);not null" json:"phone" validate:"required,min=1,max=50"`
	Email           string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"email" validate:"required,email,max=200"`
	Website         string     `gorm:"type:varchar(255);default:null" json:"website" validate:"omitempty,url,max=255"`
	YardAddress     string     `gorm:"type:varchar(255);not null" json:"yard_address" validate:"required,max=255"`
	YardLat         *float64   `gorm:"type:double" json:"yard_lat"`
	YardLng         *float64   `gorm:"type:double" json:"yard_lng"`
	PlanStatus      string     `gorm:"type:varchar(20);default:'free'" json:"plan_status" validate:"oneof=free pro enterprise"`
	IsSponsored     bool       `gorm:"default:false" json:"is_sponsored"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	BillingStatus   string     `gorm:"type:varchar(20);default:'ACTIVE'" json:"billing_status" validate:"oneof=ACTIVE PAUSED OPTED_OUT"`
	AdminNotes      string     `gorm:"type:text" json:"admin_notes,omitempty"`
	LastContactedAt *time.Time `gorm:"type:timestamp;default:null" json:"last_contacted_at,omitempty"`
	OnboardingDate  time.Time  `gorm:"autoCreateTime" json:"onboarding_date"`
	APIKeyHash      string     `gorm:"type:char(64);index;default:null" json:"-"`

	Billing   *VendorBilling `gorm:"foreignKey:VendorID" json:"billing,omitempty"`
	Equipment []Equipment    `gorm:"foreignKey:VendorID" json:"equipment,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.UUID == "" {
		v.UUID = uuid.New().String()
	}
	return nil
}

func (v *Vendor) Validate() error {
	return validator.New().Struct(v)
}

// HasYardCoordinates reports whether the vendor yard can be used for
// distance filtering.
func (v *Vendor) HasYardCoordinates() bool {
	return v.YardLat != nil && v.YardLng != nil
}
