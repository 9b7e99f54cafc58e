package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeBucketStableWithinWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	b1 := TimeBucket(base)
	b2 := TimeBucket(base.Add(29 * time.Minute))

	assert.Equal(t, b1, b2)
}

func TestTimeBucketAdvancesAcrossBoundary(t *testing.T) {
	// Buckets are aligned to multiples of the window since the epoch, so a
	// window-aligned instant starts a new bucket.
	aligned := time.UnixMilli((time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli() / Window.Milliseconds()) * Window.Milliseconds())

	assert.Equal(t, TimeBucket(aligned)+1, TimeBucket(aligned.Add(Window)))
	assert.NotEqual(t, TimeBucket(aligned.Add(-time.Millisecond)), TimeBucket(aligned))
}

func TestFingerprintCollidesOnIdenticalInputs(t *testing.T) {
	a := Fingerprint("v1", "e1", "CALL", "s1", 42)
	b := Fingerprint("v1", "e1", "CALL", "s1", 42)

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestFingerprintChangesPerField(t *testing.T) {
	base := Fingerprint("v1", "e1", "CALL", "s1", 42)

	assert.NotEqual(t, base, Fingerprint("v2", "e1", "CALL", "s1", 42))
	assert.NotEqual(t, base, Fingerprint("v1", "e2", "CALL", "s1", 42))
	assert.NotEqual(t, base, Fingerprint("v1", "e1", "TEXT", "s1", 42))
	assert.NotEqual(t, base, Fingerprint("v1", "e1", "CALL", "s2", 42))
	assert.NotEqual(t, base, Fingerprint("v1", "e1", "CALL", "s1", 43))
}

func TestFingerprintVendorLevelAction(t *testing.T) {
	// Vendor-level actions carry an empty equipment UUID and must not
	// collide with equipment-level ones.
	assert.NotEqual(t,
		Fingerprint("v1", "", "CALL", "s1", 42),
		Fingerprint("v1", "e1", "CALL", "s1", 42),
	)
}

func TestNewSessionIDDerivation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s1 := NewSessionID("iphash", "uahash", now)
	s2 := NewSessionID("iphash", "uahash", now)
	s3 := NewSessionID("iphash", "uahash", now.Add(time.Millisecond))

	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
	assert.Len(t, s1, 32)
}
