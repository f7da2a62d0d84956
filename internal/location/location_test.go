package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/location"
	"github.com/tartampluch/go-salat/internal/qibla"
	"github.com/tartampluch/go-salat/internal/store"
)

func TestStoredProvider_RoundTrip(t *testing.T) {
	p := &location.StoredProvider{Store: store.NewMemory()}

	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, location.ErrUnavailable)

	riyadh := location.Place{
		Name:        "Riyadh",
		Coordinates: qibla.Coordinates{Latitude: 24.7136, Longitude: 46.6753},
	}
	require.NoError(t, p.Save(riyadh))

	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, riyadh, got)
}

func TestStoredProvider_RejectsInvalidCoordinates(t *testing.T) {
	p := &location.StoredProvider{Store: store.NewMemory()}

	err := p.Save(location.Place{Coordinates: qibla.Coordinates{Latitude: 91}})
	assert.ErrorIs(t, err, qibla.ErrLatitudeRange)
}

func TestStaticProvider(t *testing.T) {
	p := location.StaticProvider{Place: location.Place{
		Name:        "Kaaba",
		Coordinates: qibla.Kaaba,
	}}
	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kaaba", got.Name)
}
