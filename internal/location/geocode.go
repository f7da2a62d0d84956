package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/qibla"
)

// Geocoder resolves a free-form place name to coordinates through a
// Nominatim-style search endpoint.
type Geocoder interface {
	Lookup(ctx context.Context, query, apiKey string) (Place, error)
}

// HTTPGeocoder implements Geocoder using the standard net/http library.
type HTTPGeocoder struct {
	// BaseURL is the search endpoint, e.g. https://nominatim.openstreetmap.org/search.
	BaseURL string
	Client  *http.Client
}

// NewHTTPGeocoder creates a geocoder with configured timeouts.
func NewHTTPGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: config.DefaultGeocodeTimeout,
		},
	}
}

// geocodeResult mirrors the wire format of the search endpoint. Latitude and
// longitude arrive as strings.
type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup queries the endpoint and returns the best match. The API key, when
// present, travels as a query parameter and is stripped from logged URLs.
func (g *HTTPGeocoder) Lookup(ctx context.Context, query, apiKey string) (Place, error) {
	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return Place{}, fmt.Errorf("%s: %w", config.ErrGeocodeURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return Place{}, fmt.Errorf("%s: %s", config.ErrGeocodeProtocol, u.Scheme)
	}

	q := u.Query()
	q.Set(config.QueryParamQ, query)
	q.Set(config.QueryParamFormat, config.QueryValueJSON)
	q.Set(config.QueryParamLimit, config.QueryValueLimit)
	if apiKey != "" {
		q.Set(config.QueryParamKey, apiKey)
	}
	u.RawQuery = q.Encode()

	// Safe URL for logging (query parameters may carry the API key).
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompLocation),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug(config.MsgGeocodeLookup, config.LogKeyPlace, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("network error during lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(config.ErrGeocodeStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return Place{}, fmt.Errorf("%s: %d %s", config.ErrGeocodeStatus, resp.StatusCode, resp.Status)
	}

	var results []geocodeResult
	limited := io.LimitReader(resp.Body, config.MaxGeocodeResponseSize)
	if err := json.NewDecoder(limited).Decode(&results); err != nil {
		return Place{}, fmt.Errorf("%s: %w", config.ErrGeocodeDecode, err)
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("%s: %q", config.ErrGeocodeEmpty, query)
	}

	best := results[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%s: %w", config.ErrGeocodeDecode, err)
	}
	lng, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("%s: %w", config.ErrGeocodeDecode, err)
	}

	place := Place{
		Name:        best.DisplayName,
		Coordinates: qibla.Coordinates{Latitude: lat, Longitude: lng},
	}
	if err := place.Coordinates.Validate(); err != nil {
		return Place{}, err
	}

	log.Info(config.MsgLocationSet,
		config.LogKeyPlace, place.Name,
		config.LogKeyLatitude, lat,
		config.LogKeyLongitude, lng,
	)
	return place, nil
}
