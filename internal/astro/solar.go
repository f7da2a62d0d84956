// Package astro computes the six daily prayer moments from geographic
// coordinates and a calendar date using standard solar-position formulas
// (Julian day, solar declination, equation of time, hour angle).
//
// All functions are pure and CPU-only; they never block on I/O.
package astro

import (
	"errors"
	"math"
	"time"

	"github.com/tartampluch/go-salat/internal/config"
)

// Times holds the six computed moments for one (location, date) pair,
// in the chronological order Fajr < Sunrise < Dhuhr < Asr < Maghrib < Isha.
type Times struct {
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// Ordered returns the six moments in chronological order.
func (t Times) Ordered() [6]time.Time {
	return [6]time.Time{t.Fajr, t.Sunrise, t.Dhuhr, t.Asr, t.Maghrib, t.Isha}
}

var (
	// ErrLatitudeRange and friends reject invalid input; callers decide fallback policy.
	ErrLatitudeRange  = errors.New(config.ErrLatitudeRange)
	ErrLongitudeRange = errors.New(config.ErrLongitudeRange)
	ErrDateZero       = errors.New(config.ErrDateZero)

	// ErrNoSunEvent signals a degraded computation: at extreme latitudes the
	// sun never reaches the requested depression angle on the given date.
	ErrNoSunEvent = errors.New("sun does not reach the requested angle at this latitude/date")
)

// horizonAngle is the standard depression angle for sunrise/sunset,
// accounting for refraction and solar disc radius.
const horizonAngle = 0.833

// ComputeTimes calculates the prayer moments for the calendar date of `date`
// (interpreted in date's time zone) at the given coordinates.
//
// Input errors (out-of-range coordinates, zero date) are rejected.
// ErrNoSunEvent is returned when the astronomical computation is undefined
// (polar day/night); callers apply their own fallback policy.
func ComputeTimes(latitude, longitude float64, date time.Time, m Method) (Times, error) {
	if latitude < -90 || latitude > 90 || math.IsNaN(latitude) {
		return Times{}, ErrLatitudeRange
	}
	if longitude < -180 || longitude > 180 || math.IsNaN(longitude) {
		return Times{}, ErrLongitudeRange
	}
	if date.IsZero() {
		return Times{}, ErrDateZero
	}

	year, month, day := date.Date()
	loc := date.Location()

	// Solar position evaluated at the approximate UTC instant of local solar
	// noon. A single evaluation is accurate to well under a minute.
	jd := julianDay(year, int(month), day) + 0.5 - longitude/360
	decl, eqt := sunPosition(jd)

	// Solar noon in UTC hours.
	noon := 12 - longitude/15 - eqt

	riseSet, err := hourAngle(-horizonAngle, latitude, decl)
	if err != nil {
		return Times{}, err
	}
	fajrHA, err := hourAngle(-m.FajrAngle, latitude, decl)
	if err != nil {
		return Times{}, err
	}
	asrHA, err := hourAngle(asrAltitude(latitude, decl, m.AsrShadow), latitude, decl)
	if err != nil {
		return Times{}, err
	}

	midnightUTC := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	at := func(hours float64) (time.Time, error) {
		if math.IsNaN(hours) || math.IsInf(hours, 0) {
			return time.Time{}, ErrNoSunEvent
		}
		return midnightUTC.Add(time.Duration(hours * float64(time.Hour))).In(loc).Round(time.Second), nil
	}

	var t Times
	steps := []struct {
		dst   *time.Time
		hours float64
	}{
		{&t.Fajr, noon - fajrHA},
		{&t.Sunrise, noon - riseSet},
		{&t.Dhuhr, noon},
		{&t.Asr, noon + asrHA},
		{&t.Maghrib, noon + riseSet},
	}
	for _, s := range steps {
		v, err := at(s.hours)
		if err != nil {
			return Times{}, err
		}
		*s.dst = v
	}

	if m.IshaInterval > 0 {
		t.Isha = t.Maghrib.Add(m.IshaInterval)
	} else {
		ishaHA, err := hourAngle(-m.IshaAngle, latitude, decl)
		if err != nil {
			return Times{}, err
		}
		v, err := at(noon + ishaHA)
		if err != nil {
			return Times{}, err
		}
		t.Isha = v
	}

	return t, nil
}

// julianDay converts a Gregorian calendar date to the Julian day number at 0h UT.
func julianDay(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// sunPosition returns the solar declination (radians) and the equation of
// time (hours) for the given Julian day. Formulas follow the Astronomical
// Almanac low-precision approximation.
func sunPosition(jd float64) (decl, eqt float64) {
	d := jd - 2451545.0

	g := radians(fixAngle(357.529 + 0.98560028*d)) // mean anomaly
	q := fixAngle(280.459 + 0.98564736*d)          // mean longitude, degrees
	l := radians(fixAngle(q + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)))

	e := radians(23.439 - 0.00000036*d)

	decl = math.Asin(math.Sin(e) * math.Sin(l))

	ra := degrees(math.Atan2(math.Cos(e)*math.Sin(l), math.Cos(l))) / 15
	// Wrap the RA/mean-longitude difference into [-12, 12) hours so the
	// equation of time stays continuous across the 0h boundary.
	eqt = math.Mod(q/15-ra+36, 24) - 12
	return decl, eqt
}

// hourAngle returns the time offset from solar noon, in hours, at which the
// sun's altitude equals `altitude` degrees. ErrNoSunEvent is returned when
// the altitude is never reached on the given date (polar day/night).
func hourAngle(altitude, latitude float64, decl float64) (float64, error) {
	lat := radians(latitude)
	cosH := (math.Sin(radians(altitude)) - math.Sin(lat)*math.Sin(decl)) /
		(math.Cos(lat) * math.Cos(decl))
	if cosH < -1 || cosH > 1 || math.IsNaN(cosH) {
		return 0, ErrNoSunEvent
	}
	return degrees(math.Acos(cosH)) / 15, nil
}

// asrAltitude returns the solar altitude (degrees) at which an object's
// shadow equals `shadow` times its height plus its noon shadow.
func asrAltitude(latitude float64, decl float64, shadow float64) float64 {
	if shadow <= 0 {
		shadow = 1
	}
	return degrees(math.Atan(1 / (shadow + math.Tan(math.Abs(radians(latitude)-decl)))))
}

func fixAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
