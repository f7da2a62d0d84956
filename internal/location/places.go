package location

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/qibla"
)

// ImportPlacesFile opens a .vcf file and imports every card carrying usable
// coordinates.
func ImportPlacesFile(path string) ([]Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPlacesOpen, err)
	}
	defer func() { _ = f.Close() }()
	return ImportPlaces(f)
}

// ImportPlaces parses a vCard stream and returns the places that carry a GEO
// property. Malformed cards and cards without coordinates are skipped, not
// fatal, to maximize data recovery.
func ImportPlaces(r io.Reader) ([]Place, error) {
	decoder := vcard.NewDecoder(r)
	var places []Place

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgPlaceSkipped,
				config.LogKeyComponent, config.CompLocation,
				config.LogKeyError, err)
			continue
		}

		geo := card.Get(config.VCardGEO)
		if geo == nil || geo.Value == "" {
			continue
		}

		coords, err := parseGeo(geo.Value)
		if err != nil {
			slog.Debug(config.MsgPlaceSkipped,
				config.LogKeyComponent, config.CompLocation,
				config.LogKeyValue, geo.Value)
			continue
		}

		name := coords.String()
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		}

		places = append(places, Place{Name: name, Coordinates: coords})
	}

	if len(places) == 0 {
		return nil, errors.New(config.ErrPlacesNone)
	}

	slog.Info(config.MsgPlacesImported,
		config.LogKeyComponent, config.CompLocation,
		config.LogKeyCount, len(places),
	)
	return places, nil
}

// parseGeo handles both the vCard 4.0 geo URI ("geo:24.71,46.67") and the
// legacy 3.0 semicolon form ("24.71;46.67").
func parseGeo(value string) (qibla.Coordinates, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), config.GeoURIPref)

	sep := ","
	if !strings.Contains(v, sep) {
		sep = ";"
	}
	parts := strings.SplitN(v, sep, 3)
	if len(parts) < 2 {
		return qibla.Coordinates{}, fmt.Errorf("malformed GEO value: %q", value)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return qibla.Coordinates{}, err
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return qibla.Coordinates{}, err
	}

	coords := qibla.Coordinates{Latitude: lat, Longitude: lng}
	if err := coords.Validate(); err != nil {
		return qibla.Coordinates{}, err
	}
	return coords, nil
}
