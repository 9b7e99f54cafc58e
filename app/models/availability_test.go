package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	a := &Availability{Status: AvailabilityUnknown}

	err := a.SetStatus("BROKEN", nil, time.Now())

	assert.ErrorIs(t, err, ErrInvalidAvailabilityStatus)
	assert.Equal(t, AvailabilityUnknown, a.Status)
}

func TestSetStatusLimitedKeepsEarliestDate(t *testing.T) {
	a := &Availability{}
	earliest := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 28, 9, 0, 0, 0, time.UTC)

	require.NoError(t, a.SetStatus(AvailabilityLimited, &earliest, now))

	assert.Equal(t, AvailabilityLimited, a.Status)
	require.NotNil(t, a.EarliestDate)
	assert.Equal(t, earliest, *a.EarliestDate)
	assert.Equal(t, now, a.LastUpdated)
}

func TestSetStatusNonLimitedClearsEarliestDate(t *testing.T) {
	earliest := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	for _, status := range []string{AvailabilityAvailable, AvailabilityUnavailable, AvailabilityUnknown} {
		a := &Availability{Status: AvailabilityLimited, EarliestDate: &earliest}

		require.NoError(t, a.SetStatus(status, &earliest, now))

		assert.Nil(t, a.EarliestDate, "earliestDate must be cleared for %s", status)
		assert.Equal(t, now, a.LastUpdated)
	}
}

func TestAvailabilityPriorityOrdering(t *testing.T) {
	assert.Equal(t, 0, AvailabilityPriority(AvailabilityAvailable))
	assert.Equal(t, 1, AvailabilityPriority(AvailabilityLimited))
	assert.Equal(t, 2, AvailabilityPriority(AvailabilityUnknown))
	assert.Equal(t, 3, AvailabilityPriority(AvailabilityUnavailable))
	assert.Equal(t, 99, AvailabilityPriority("SOMETHING_ELSE"))
}
