// Package location resolves the coordinates the prayer engine computes for.
// There is no GPS on the desktop: the user either enters coordinates
// manually, looks a place name up through a geocoder, or imports favourite
// places from a vCard file.
package location

import (
	"context"
	"errors"

	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/qibla"
	"github.com/tartampluch/go-salat/internal/store"
)

// ErrUnavailable is returned when no location has been configured yet.
// Callers treat it as a prompt for manual entry, not as a failure.
var ErrUnavailable = errors.New(config.ErrLocUnavailable)

// Place is a named coordinate pair.
type Place struct {
	Name        string            `json:"name"`
	Coordinates qibla.Coordinates `json:"coordinates"`
}

// Provider yields the current place.
type Provider interface {
	Current(ctx context.Context) (Place, error)
}

// StoredProvider reads the place last saved by the user from the key-value
// store. It is the default provider wired at startup.
type StoredProvider struct {
	Store store.Store
}

func (p *StoredProvider) Current(context.Context) (Place, error) {
	var place Place
	found, err := p.Store.Get(config.StoreKeyLocation, &place)
	if err != nil {
		return Place{}, err
	}
	if !found {
		return Place{}, ErrUnavailable
	}
	if err := place.Coordinates.Validate(); err != nil {
		return Place{}, err
	}
	return place, nil
}

// Save persists the place so subsequent Current calls return it.
func (p *StoredProvider) Save(place Place) error {
	if err := place.Coordinates.Validate(); err != nil {
		return err
	}
	return p.Store.Set(config.StoreKeyLocation, place)
}

// StaticProvider always returns the same place. Used in tests and for the
// command line override.
type StaticProvider struct {
	Place Place
}

func (p StaticProvider) Current(context.Context) (Place, error) {
	if err := p.Place.Coordinates.Validate(); err != nil {
		return Place{}, err
	}
	return p.Place, nil
}
