package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxListingsPerPlan(t *testing.T) {
	assert.Equal(t, 5, MaxListings("free"))
	assert.Equal(t, 50, MaxListings("pro"))
	assert.Equal(t, 0, MaxListings("enterprise"))
	assert.Equal(t, 5, MaxListings("unknown-plan"))
}

func TestCanCreateListing(t *testing.T) {
	assert.True(t, CanCreateListing("free", 4))
	assert.False(t, CanCreateListing("free", 5))
	assert.True(t, CanCreateListing("pro", 49))
	assert.False(t, CanCreateListing("pro", 50))
	assert.True(t, CanCreateListing("enterprise", 100000))
}
