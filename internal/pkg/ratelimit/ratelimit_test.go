package ratelimit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLimiterAllowsUpToCapacity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(DefaultCapacity, DefaultWindow, WithClock(fixedClock(now)))

	for i := 0; i < DefaultCapacity; i++ {
		res := l.Check("ip:a")
		assert.True(t, res.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, DefaultCapacity-i-1, res.Remaining)
	}

	res := l.Check("ip:a")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestLimiterWindowExpiryResets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	l := New(2, time.Minute, WithClock(func() time.Time { return clock }))

	assert.True(t, l.Check("k").Allowed)
	assert.True(t, l.Check("k").Allowed)
	assert.False(t, l.Check("k").Allowed)

	clock = now.Add(time.Minute + time.Second)

	res := l.Check("k")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	assert.True(t, l.Check("a").Allowed)
	assert.False(t, l.Check("a").Allowed)
	assert.True(t, l.Check("b").Allowed)
}

func TestLimiterReset(t *testing.T) {
	l := New(1, time.Minute)

	assert.True(t, l.Check("a").Allowed)
	assert.False(t, l.Check("a").Allowed)

	l.Reset()

	assert.True(t, l.Check("a").Allowed)
}

type failingStore struct{}

func (failingStore) Check(string, int, time.Duration, time.Time) (Result, error) {
	return Result{}, errors.New("store down")
}
func (failingStore) Reset() {}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	l := New(5, time.Minute, WithStore(failingStore{}))

	res := l.Check("a")
	assert.True(t, res.Allowed)
}

func TestLimiterInstancesAreIsolated(t *testing.T) {
	l1 := New(1, time.Minute)
	l2 := New(1, time.Minute)

	assert.True(t, l1.Check("a").Allowed)
	assert.False(t, l1.Check("a").Allowed)
	assert.True(t, l2.Check("a").Allowed)
}
