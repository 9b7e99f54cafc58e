// Package ledger owns the append-only contact event log, the sole source of
// truth for pay-per-click billing. At-least-once fires from the client
// collapse to at-most-once billable entries per dedupe window.
package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/dedupe"
)

var (
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrInvalidEventType  = errors.New("invalid contact event type")
)

// RecordInput carries one contact action plus the hashed client identity and
// the search context captured with the click.
type RecordInput struct {
	VendorUUID    string
	EquipmentUUID string
	EventType     string
	SessionID     string
	IPHash        string
	UserAgentHash string

	SearchLocationText string
	SearchRadius       *float64
	NeedDate           string
	Referrer           string
}

// RecordResult reports whether the action became a billable ledger entry.
// The action itself always succeeds; a duplicate within the window is a
// successful non-billable outcome, never an error.
type RecordResult struct {
	Billable  bool
	EventUUID string
	SessionID string
}

// Service is the only writer of deduped ledger entries.
type Service struct {
	vendors   repository.VendorRepository
	equipment repository.EquipmentRepository
	events    repository.ContactEventRepository
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a ledger service over the given repositories.
func NewService(vendors repository.VendorRepository, equipment repository.EquipmentRepository, events repository.ContactEventRepository, opts ...Option) *Service {
	s := &Service{
		vendors:   vendors,
		equipment: equipment,
		events:    events,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record validates the action, fingerprints it and appends a billable entry
// unless the same fingerprint already hit the ledger inside the dedupe
// window. The duplicate check runs twice: a read before the insert covers
// the common case cheaply, and the unique index on dedupe_key catches the
// race where two concurrent requests both pass the read. Either way at most
// one billable entry exists per fingerprint.
func (s *Service) Record(in RecordInput) (*RecordResult, error) {
	if !models.IsValidContactEventType(in.EventType) {
		return nil, ErrInvalidEventType
	}

	vendor, err := s.vendors.GetByUUID(in.VendorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	var equipmentID *uint
	if in.EquipmentUUID != "" {
		equip, err := s.equipment.GetByUUID(in.EquipmentUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEquipmentNotFound
			}
			return nil, err
		}
		equipmentID = &equip.ID
	}

	now := s.now()

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = dedupe.NewSessionID(in.IPHash, in.UserAgentHash, now)
	}

	bucket := dedupe.TimeBucket(now)
	key := dedupe.Fingerprint(in.VendorUUID, in.EquipmentUUID, in.EventType, sessionID, bucket)

	existing, err := s.events.FindByDedupeKeySince(key, now.Add(-dedupe.Window))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RecordResult{Billable: false, SessionID: sessionID}, nil
	}

	event := &models.ContactEvent{
		VendorID:           vendor.ID,
		EquipmentID:        equipmentID,
		EventType:          in.EventType,
		SessionID:          sessionID,
		IPHash:             in.IPHash,
		UserAgentHash:      in.UserAgentHash,
		DedupeKey:          &key,
		TimeBucket:         bucket,
		IsBillable:         true,
		SearchLocationText: in.SearchLocationText,
		SearchRadius:       in.SearchRadius,
		NeedDate:           in.NeedDate,
		Referrer:           in.Referrer,
	}

	if err := s.events.Create(event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request with the same fingerprint won the insert.
			return &RecordResult{Billable: false, SessionID: sessionID}, nil
		}
		// A lost write here is lost money; surface it.
		return nil, err
	}

	return &RecordResult{Billable: true, EventUUID: event.UUID, SessionID: sessionID}, nil
}

// RecordSimple is the legacy click-tracking path: no rate limiting, no
// dedupe, always billable. It appends to the same ledger.
func (s *Service) RecordSimple(vendorUUID, equipmentUUID, eventType, searchParamsJSON string) (*models.ContactEvent, error) {
	if !models.IsValidContactEventType(eventType) {
		return nil, ErrInvalidEventType
	}

	vendor, err := s.vendors.GetByUUID(vendorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	var equipmentID *uint
	if equipmentUUID != "" {
		equip, err := s.equipment.GetByUUID(equipmentUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEquipmentNotFound
			}
			return nil, err
		}
		equipmentID = &equip.ID
	}

	event := &models.ContactEvent{
		VendorID:         vendor.ID,
		EquipmentID:      equipmentID,
		EventType:        eventType,
		SearchParamsJSON: searchParamsJSON,
		IsBillable:       true,
	}
	if err := s.events.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}
