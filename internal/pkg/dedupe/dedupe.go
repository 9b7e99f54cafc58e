// Package dedupe computes the time-bucketed fingerprint that collapses
// repeated client-side contact actions into a single billable event.
package dedupe

import (
	"fmt"
	"time"

	"github.com/HawgLeg/equipscout/internal/pkg/hashid"
)

// Window is the dedupe interval. Buckets are aligned to it, not sliding:
// two identical actions straddling a bucket boundary are both billed.
const Window = 30 * time.Minute

// TimeBucket aligns a timestamp to the dedupe window.
func TimeBucket(now time.Time) int64 {
	return now.UnixMilli() / Window.Milliseconds()
}

// Fingerprint produces the dedupe key for a contact action. Two calls with
// identical inputs in the same bucket always collide; any differing field
// changes the key. equipmentUUID is empty for vendor-level actions.
func Fingerprint(vendorUUID, equipmentUUID, eventType, sessionID string, bucket int64) string {
	return hashid.Hash(fmt.Sprintf("%s:%s:%s:%s:%d", vendorUUID, equipmentUUID, eventType, sessionID, bucket))
}

// NewSessionID synthesizes a session identifier for clients that did not
// send one. It is derived from the hashed client identity plus the current
// time and returned to the caller for reuse, so that repeated clicks from
// the same client dedupe against each other.
func NewSessionID(ipHash, userAgentHash string, now time.Time) string {
	return hashid.Hash(fmt.Sprintf("%s:%s:%d", ipHash, userAgentHash, now.UnixMilli()))
}
