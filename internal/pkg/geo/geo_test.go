package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, Distance(30.2672, -97.7431, 30.2672, -97.7431), 1e-9)
}

func TestDistanceOneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is about 69.1 miles.
	d := Distance(0, 0, 0, 1)
	assert.InDelta(t, 69.1, d, 0.1)
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Distance(30.3781, -97.6814, 30.1892, -97.7689)
	b := Distance(30.1892, -97.7689, 30.3781, -97.6814)

	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceKnownAustinPair(t *testing.T) {
	// North Austin United Rentals yard to South Austin Sunbelt yard,
	// roughly 14 miles apart.
	d := Distance(30.3781, -97.6814, 30.1892, -97.7689)

	assert.Greater(t, d, 10.0)
	assert.Less(t, d, 20.0)
}
