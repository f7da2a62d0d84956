package qibla_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/qibla"
)

func TestBearing_Riyadh(t *testing.T) {
	// Riyadh lies northeast of Mecca, so the Qibla points west-southwest.
	b, err := qibla.Bearing(qibla.Coordinates{Latitude: 24.7136, Longitude: 46.6753})
	require.NoError(t, err)

	assert.InDelta(t, 243.8, b, 1.0)
}

func TestBearing_Range(t *testing.T) {
	observers := []qibla.Coordinates{
		{Latitude: 0, Longitude: 0},
		{Latitude: 51.5074, Longitude: -0.1278},
		{Latitude: -33.4489, Longitude: -70.6693},
		{Latitude: 35.6762, Longitude: 139.6503},
		{Latitude: 21.4225, Longitude: 39.9},
	}

	for _, o := range observers {
		b, err := qibla.Bearing(o)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestBearing_Continuity(t *testing.T) {
	// Small input perturbations produce small output perturbations away from
	// the poles and the antipode.
	base := qibla.Coordinates{Latitude: 30.0444, Longitude: 31.2357}
	b0, err := qibla.Bearing(base)
	require.NoError(t, err)

	b1, err := qibla.Bearing(qibla.Coordinates{Latitude: base.Latitude + 0.01, Longitude: base.Longitude})
	require.NoError(t, err)
	b2, err := qibla.Bearing(qibla.Coordinates{Latitude: base.Latitude, Longitude: base.Longitude + 0.01})
	require.NoError(t, err)

	assert.InDelta(t, b0, b1, 0.5)
	assert.InDelta(t, b0, b2, 0.5)
}

func TestDistanceKm_KaabaIsZero(t *testing.T) {
	d, err := qibla.DistanceKm(qibla.Kaaba)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 0.001)
}

func TestDistanceKm_Riyadh(t *testing.T) {
	// Haversine with R=6371 km gives ~790 km between Riyadh and the Kaaba.
	d, err := qibla.DistanceKm(qibla.Coordinates{Latitude: 24.7136, Longitude: 46.6753})
	require.NoError(t, err)
	assert.InDelta(t, 790, d, 15)
}

func TestValidate_Rejects(t *testing.T) {
	_, err := qibla.Bearing(qibla.Coordinates{Latitude: 91, Longitude: 0})
	assert.ErrorIs(t, err, qibla.ErrLatitudeRange)

	_, err = qibla.DistanceKm(qibla.Coordinates{Latitude: 0, Longitude: -181})
	assert.ErrorIs(t, err, qibla.ErrLongitudeRange)
}

func TestGreatCircleKm_Symmetric(t *testing.T) {
	a := qibla.Coordinates{Latitude: 24.7136, Longitude: 46.6753}
	b := qibla.Coordinates{Latitude: 30.0444, Longitude: 31.2357}

	assert.InDelta(t, qibla.GreatCircleKm(a, b), qibla.GreatCircleKm(b, a), 1e-9)
	assert.Equal(t, 0.0, qibla.GreatCircleKm(a, a))
}
