package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
	"github.com/HawgLeg/equipscout/internal/pkg/dedupe"
)

type fakeVendors struct {
	byUUID map[string]*models.Vendor
}

func (f *fakeVendors) Create(*models.Vendor) error          { return nil }
func (f *fakeVendors) GetByID(uint) (*models.Vendor, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeVendors) GetByUUID(u string) (*models.Vendor, error) {
	if v, ok := f.byUUID[u]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeVendors) GetByUUIDWithEquipment(u string) (*models.Vendor, error) {
	return f.GetByUUID(u)
}
func (f *fakeVendors) GetByAPIKeyHash(string) (*models.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeVendors) Update(*models.Vendor) error                        { return nil }
func (f *fakeVendors) ListWithCounts() ([]repository.VendorWithCounts, error) { return nil, nil }
func (f *fakeVendors) ListWithBilling() ([]models.Vendor, error)          { return nil, nil }
func (f *fakeVendors) UpsertBilling(uint, float64) (*models.VendorBilling, error) {
	return nil, nil
}
func (f *fakeVendors) Count() (int64, error)       { return 0, nil }
func (f *fakeVendors) CountActive() (int64, error) { return 0, nil }

type fakeEquipment struct {
	byUUID map[string]*models.Equipment
}

func (f *fakeEquipment) Create(*models.Equipment) error { return nil }
func (f *fakeEquipment) GetByUUID(u string) (*models.Equipment, error) {
	if e, ok := f.byUUID[u]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEquipment) GetByUUIDForVendor(string, uint) (*models.Equipment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEquipment) ListByVendor(uint) ([]models.Equipment, error) { return nil, nil }
func (f *fakeEquipment) ListActiveListings(string, *float64) ([]models.Equipment, error) {
	return nil, nil
}
func (f *fakeEquipment) Update(*models.Equipment) error                 { return nil }
func (f *fakeEquipment) Delete(uint) error                              { return nil }
func (f *fakeEquipment) SaveAvailability(*models.Availability) error    { return nil }
func (f *fakeEquipment) Count() (int64, error)                          { return 0, nil }

type fakeEvents struct {
	created []*models.ContactEvent
	// forceDuplicate simulates losing the insert race to a concurrent
	// writer with the same dedupe key.
	forceDuplicate bool
	now            func() time.Time
}

func (f *fakeEvents) Create(e *models.ContactEvent) error {
	if f.forceDuplicate {
		return gorm.ErrDuplicatedKey
	}
	if e.DedupeKey != nil {
		for _, existing := range f.created {
			if existing.DedupeKey != nil && *existing.DedupeKey == *e.DedupeKey {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	e.UUID = uuid.New().String()
	e.CreatedAt = f.now()
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEvents) FindByDedupeKeySince(key string, since time.Time) (*models.ContactEvent, error) {
	for _, e := range f.created {
		if e.DedupeKey != nil && *e.DedupeKey == key && e.CreatedAt.After(since) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEvents) ListBillableSince(time.Time) ([]models.ContactEvent, error) { return nil, nil }
func (f *fakeEvents) CountByVendor(uint) (int64, error)                          { return 0, nil }
func (f *fakeEvents) CountByVendorSince(uint, time.Time) (int64, error)          { return 0, nil }
func (f *fakeEvents) CountBillableByVendorSince(uint, time.Time) (int64, error)  { return 0, nil }
func (f *fakeEvents) TypeCountsByVendor(uint) ([]repository.EventTypeCount, error) {
	return nil, nil
}
func (f *fakeEvents) Count() (int64, error) { return 0, nil }

func newTestService(clock *time.Time) (*Service, *fakeEvents, *models.Vendor, *models.Equipment) {
	vendor := &models.Vendor{ID: 1, UUID: uuid.New().String(), Name: "Austin Rentals"}
	equip := &models.Equipment{ID: 7, UUID: uuid.New().String(), VendorID: 1, Type: models.EquipmentTypeCTL}

	events := &fakeEvents{now: func() time.Time { return *clock }}
	svc := NewService(
		&fakeVendors{byUUID: map[string]*models.Vendor{vendor.UUID: vendor}},
		&fakeEquipment{byUUID: map[string]*models.Equipment{equip.UUID: equip}},
		events,
		WithClock(func() time.Time { return *clock }),
	)
	return svc, events, vendor, equip
}

func TestRecordRejectsInvalidEventType(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, vendor, _ := newTestService(&clock)

	_, err := svc.Record(RecordInput{VendorUUID: vendor.UUID, EventType: "FAX"})

	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestRecordUnknownVendor(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(&clock)

	_, err := svc.Record(RecordInput{VendorUUID: uuid.New().String(), EventType: models.ContactEventCall})

	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestRecordUnknownEquipment(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, vendor, _ := newTestService(&clock)

	_, err := svc.Record(RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: uuid.New().String(),
		EventType:     models.ContactEventCall,
	})

	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestRecordDeduplicatesWithinWindow(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)
	svc, events, vendor, equip := newTestService(&clock)

	in := RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: equip.UUID,
		EventType:     models.ContactEventCall,
		SessionID:     "session-1",
		IPHash:        "iphash",
		UserAgentHash: "uahash",
	}

	first, err := svc.Record(in)
	require.NoError(t, err)
	assert.True(t, first.Billable)
	assert.NotEmpty(t, first.EventUUID)

	clock = clock.Add(5 * time.Minute)

	second, err := svc.Record(in)
	require.NoError(t, err)
	assert.False(t, second.Billable)
	assert.Equal(t, "session-1", second.SessionID)

	assert.Len(t, events.created, 1, "duplicate must not append a second ledger entry")
	assert.True(t, events.created[0].IsBillable)
}

func TestRecordDifferentSessionsBillSeparately(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)
	svc, events, vendor, equip := newTestService(&clock)

	in := RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: equip.UUID,
		EventType:     models.ContactEventCall,
		SessionID:     "session-1",
	}
	first, err := svc.Record(in)
	require.NoError(t, err)

	in.SessionID = "session-2"
	second, err := svc.Record(in)
	require.NoError(t, err)

	assert.True(t, first.Billable)
	assert.True(t, second.Billable)
	assert.Len(t, events.created, 2)
}

func TestRecordSynthesizesSessionFromClientHashes(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)
	svc, _, vendor, equip := newTestService(&clock)

	in := RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: equip.UUID,
		EventType:     models.ContactEventWebsite,
		IPHash:        "iphash",
		UserAgentHash: "uahash",
	}

	first, err := svc.Record(in)
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.True(t, first.Billable)

	// A retry that echoes the returned session ID dedupes against the
	// original even though the clock moved on.
	clock = clock.Add(time.Minute)
	in.SessionID = first.SessionID
	second, err := svc.Record(in)
	require.NoError(t, err)
	assert.False(t, second.Billable)
}

func TestRecordNewBucketBillsAgain(t *testing.T) {
	// Align the clock to a bucket boundary so the second event lands in a
	// fresh bucket exactly one window later.
	aligned := time.UnixMilli((time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli() / dedupe.Window.Milliseconds()) * dedupe.Window.Milliseconds())
	clock := aligned
	svc, events, vendor, equip := newTestService(&clock)

	in := RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: equip.UUID,
		EventType:     models.ContactEventCall,
		SessionID:     "session-1",
	}

	first, err := svc.Record(in)
	require.NoError(t, err)
	assert.True(t, first.Billable)

	clock = aligned.Add(dedupe.Window)

	second, err := svc.Record(in)
	require.NoError(t, err)
	assert.True(t, second.Billable, "a new bucket starts a new billable window")
	assert.Len(t, events.created, 2)
}

func TestRecordLosingInsertRaceIsNonBillable(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)
	svc, events, vendor, equip := newTestService(&clock)
	events.forceDuplicate = true

	res, err := svc.Record(RecordInput{
		VendorUUID:    vendor.UUID,
		EquipmentUUID: equip.UUID,
		EventType:     models.ContactEventCall,
		SessionID:     "session-1",
	})

	require.NoError(t, err)
	assert.False(t, res.Billable)
}

func TestRecordSimpleAlwaysBillable(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)
	svc, events, vendor, equip := newTestService(&clock)

	for i := 0; i < 3; i++ {
		event, err := svc.RecordSimple(vendor.UUID, equip.UUID, models.ContactEventEmail, `{"q":"ctl"}`)
		require.NoError(t, err)
		assert.True(t, event.IsBillable)
		assert.Nil(t, event.DedupeKey)
	}

	assert.Len(t, events.created, 3)
}
