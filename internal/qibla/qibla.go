// Package qibla provides the great-circle geometry for the prayer direction:
// the bearing from an observer to the Kaaba, haversine distances, and the
// compass heading resolution used by the Qibla view.
//
// All functions are pure, deterministic and side-effect free.
package qibla

import (
	"errors"
	"fmt"
	"math"

	"github.com/tartampluch/go-salat/internal/config"
)

// Coordinates is a geographic position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the position for display and as a fallback place name.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Kaaba is the fixed reference point all bearings aim at.
var Kaaba = Coordinates{Latitude: 21.4225, Longitude: 39.8262}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

var (
	ErrLatitudeRange  = errors.New(config.ErrLatitudeRange)
	ErrLongitudeRange = errors.New(config.ErrLongitudeRange)
)

// Validate rejects out-of-range or non-finite coordinates.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return ErrLatitudeRange
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// Bearing returns the initial great-circle bearing from the observer to the
// Kaaba, in degrees normalized into [0, 360).
func Bearing(observer Coordinates) (float64, error) {
	if err := observer.Validate(); err != nil {
		return 0, err
	}

	lat := radians(observer.Latitude)
	dLng := radians(Kaaba.Longitude - observer.Longitude)
	kaabaLat := radians(Kaaba.Latitude)

	y := math.Sin(dLng)
	x := math.Cos(lat)*math.Tan(kaabaLat) - math.Sin(lat)*math.Cos(dLng)

	return normalize(degrees(math.Atan2(y, x))), nil
}

// DistanceKm returns the great-circle distance from the observer to the Kaaba.
func DistanceKm(observer Coordinates) (float64, error) {
	if err := observer.Validate(); err != nil {
		return 0, err
	}
	return GreatCircleKm(observer, Kaaba), nil
}

// GreatCircleKm computes the haversine distance between two points.
// It is also used by the staleness rule that triggers recomputation when the
// user moves more than a threshold distance.
func GreatCircleKm(a, b Coordinates) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// normalize wraps an angle in degrees into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
