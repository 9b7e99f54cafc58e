package models

import (
	"errors"
	"time"
)

const (
	AvailabilityAvailable   = "AVAILABLE"
	AvailabilityLimited     = "LIMITED"
	AvailabilityUnavailable = "UNAVAILABLE"
	AvailabilityUnknown     = "UNKNOWN"
)

var (
	ErrInvalidEquipmentType      = errors.New("invalid equipment type")
	ErrInvalidAvailabilityStatus = errors.New("invalid availability status")
)

func IsValidAvailabilityStatus(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilityUnavailable, AvailabilityUnknown:
		return true
	}
	return false
}

// AvailabilityPriority orders statuses for search ranking: AVAILABLE first,
// UNAVAILABLE last. Unrecognised statuses sort after everything.
func AvailabilityPriority(status string) int {
	switch status {
	case AvailabilityAvailable:
		return 0
	case AvailabilityLimited:
		return 1
	case AvailabilityUnknown:
		return 2
	case AvailabilityUnavailable:
		return 3
	}
	return 99
}

// Availability is the 1:1 rentability state of an equipment listing. Created
// alongside the equipment as UNKNOWN; only ever mutated by the owning vendor.
type Availability struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	EquipmentID uint `gorm:"uniqueIndex;not null" json:"equipment_id"`

	Status string `gorm:"type:varchar(20);default:'UNKNOWN'" json:"status"`
	// EarliestDate is meaningful for LIMITED only: the next date the
	// equipment is expected back.
	EarliestDate *time.Time `gorm:"type:timestamp;default:null" json:"earliest_date"`
	LastUpdated  time.Time  `gorm:"autoCreateTime" json:"last_updated"`
}

// SetStatus applies a status change, clearing EarliestDate for any
// non-LIMITED status and refreshing LastUpdated.
func (a *Availability) SetStatus(status string, earliestDate *time.Time, now time.Time) error {
	if !IsValidAvailabilityStatus(status) {
		return ErrInvalidAvailabilityStatus
	}
	a.Status = status
	if status == AvailabilityLimited {
		a.EarliestDate = earliestDate
	} else {
		a.EarliestDate = nil
	}
	a.LastUpdated = now
	return nil
}
