package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venuedate/venuedate-backend/internal/geo"
)

// meters per degree of latitude under the haversine sphere
const metersPerLatDegree = geo.EarthRadiusMeters * 3.141592653589793 / 180

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, geo.Distance(48.85, 2.35, 48.85, 2.35))
}

func TestDistanceOneLatDegree(t *testing.T) {
	d := geo.Distance(0, 0, 1, 0)
	assert.InDelta(t, metersPerLatDegree, d, 0.01)
}

func TestDistanceSymmetric(t *testing.T) {
	a := geo.Distance(40.0, -73.9, 40.1, -74.0)
	b := geo.Distance(40.1, -74.0, 40.0, -73.9)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceSmallOffset(t *testing.T) {
	// A point 150m north of the origin along a meridian.
	lat := 150 / metersPerLatDegree
	d := geo.Distance(0, 0, lat, 0)
	assert.InDelta(t, 150, d, 0.01)
}

func TestRoundedDistance(t *testing.T) {
	lat := 249.6 / metersPerLatDegree
	assert.Equal(t, 250, geo.RoundedDistance(0, 0, lat, 0))
}
