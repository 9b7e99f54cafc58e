package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EquipmentTypeCTL         = "CTL"
	EquipmentTypeSkid        = "SKID"
	EquipmentTypeExcavator   = "EXCAVATOR"
	EquipmentTypeDozer       = "DOZER"
	EquipmentTypeCrane       = "CRANE"
	EquipmentTypeBackhoe     = "BACKHOE"
	EquipmentTypeForklift    = "FORKLIFT"
	EquipmentTypeTelehandler = "TELEHANDLER"
	EquipmentTypeRoller      = "ROLLER"
	EquipmentTypeGrader      = "GRADER"
	EquipmentTypeLoader      = "LOADER"
	EquipmentTypeDumpTruck   = "DUMP_TRUCK"
	EquipmentTypeOther       = "OTHER"

	SizeClassSmall  = "small"
	SizeClassMedium = "medium"
	SizeClassLarge  = "large"
)

// EquipmentTypes is the closed set of machine categories.
var EquipmentTypes = []string{
	EquipmentTypeCTL,
	EquipmentTypeSkid,
	EquipmentTypeExcavator,
	EquipmentTypeDozer,
	EquipmentTypeCrane,
	EquipmentTypeBackhoe,
	EquipmentTypeForklift,
	EquipmentTypeTelehandler,
	EquipmentTypeRoller,
	EquipmentTypeGrader,
	EquipmentTypeLoader,
	EquipmentTypeDumpTruck,
	EquipmentTypeOther,
}

func IsValidEquipmentType(t string) bool {
	for _, known := range EquipmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Equipment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UUID     string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	VendorID uint   `gorm:"index;not null" json:"vendor_id"`
	Vendor   Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`

	Type      string `gorm:"type:varchar(20);not null;index" json:"type" validate:"required"`
	SizeClass string `gorm:"type:varchar(10);default:null" json:"size_class" validate:"omitempty,oneof=small medium large"`
	Make      string `gorm:"type:varchar(100);default:null" json:"make"`
	Model     string `gorm:"type:varchar(100);default:null" json:"model"`
	Year      *int   `gorm:"type:int" json:"year"`

	// Rate bounds are independently nullable; a fully null range means
	// "rate not published".
	RateHourMin *float64 `gorm:"type:decimal(10,2)" json:"rate_hour_min"`
	RateHourMax *float64 `gorm:"type:decimal(10,2)" json:"rate_hour_max"`
	RateDayMin  *float64 `gorm:"type:decimal(10,2)" json:"rate_day_min"`
	RateDayMax  *float64 `gorm:"type:decimal(10,2)" json:"rate_day_max"`

	Notes     string `gorm:"type:text" json:"notes"`
	ImageURL  string `gorm:"type:varchar(255);default:null" json:"image_url"`
	ViewCount int64  `gorm:"default:0" json:"view_count"`

	Availability *Availability `gorm:"foreignKey:EquipmentID" json:"availability,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New().String()
	}
	return nil
}

func (e *Equipment) Validate() error {
	if !IsValidEquipmentType(e.Type) {
		return ErrInvalidEquipmentType
	}
	return validator.New().Struct(e)
}
