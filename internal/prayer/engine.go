package prayer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tartampluch/go-salat/internal/astro"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/qibla"
)

// Engine computes day schedules from coordinates and dates. It is the only
// caller of the astronomical core and owns the degrade-gracefully policy.
type Engine struct {
	Clock  Clock
	Method string
}

// NewEngine constructs an engine with the given calculation method name.
// Unknown names resolve to the default method.
func NewEngine(clock Clock, method string) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{Clock: clock, Method: method}
}

// MethodName returns the resolved calculation method name, with unknown
// names already collapsed to the default. It is the value schedules carry.
func (e *Engine) MethodName() string {
	return astro.MethodByName(e.Method).Name
}

// fallbackTable is the fixed local-clock schedule used when the astronomical
// computation is undefined (extreme latitudes). Hours/minutes match the
// schedule users saw before per-location computation existed.
var fallbackTable = [6]struct {
	name   Name
	hour   int
	minute int
}{
	{Fajr, 5, 30},
	{Sunrise, 6, 45},
	{Dhuhr, 12, 30},
	{Asr, 15, 45},
	{Maghrib, 18, 20},
	{Isha, 19, 45},
}

// ComputeDay returns the six events for the calendar date of `date` at the
// given coordinates, in fixed symbolic order.
//
// Input errors (bad coordinates, zero date) are returned to the caller.
// A failing astronomical computation is recovered locally via the fixed
// fallback schedule so callers always receive six displayable events; the
// result carries Fallback=true to keep the degradation observable.
func (e *Engine) ComputeDay(lat, lng float64, date time.Time) (Schedule, error) {
	method := astro.MethodByName(e.Method)

	times, err := astro.ComputeTimes(lat, lng, date, method)
	switch {
	case err == nil:
		s := Schedule{
			Location: qibla.Coordinates{Latitude: lat, Longitude: lng},
			Date:     DateKey(date),
			Method:   method.Name,
		}
		ordered := times.Ordered()
		for i, name := range Order {
			s.Events[i] = Event{Name: name, Time: ordered[i]}
		}
		return s, nil

	case errors.Is(err, astro.ErrLatitudeRange),
		errors.Is(err, astro.ErrLongitudeRange),
		errors.Is(err, astro.ErrDateZero):
		// Input errors are the caller's to handle.
		return Schedule{}, err

	default:
		slog.Warn(config.MsgComputeFallback,
			config.LogKeyComponent, config.CompAstro,
			config.LogKeyLatitude, lat,
			config.LogKeyLongitude, lng,
			config.LogKeyError, err,
		)
		return e.fallbackSchedule(lat, lng, date), nil
	}
}

// fallbackSchedule builds the fixed schedule anchored on the requested date,
// rolling each already-past moment to the next day so every event remains
// announceable.
func (e *Engine) fallbackSchedule(lat, lng float64, date time.Time) Schedule {
	now := e.Clock.Now()
	year, month, day := date.Date()
	loc := date.Location()

	s := Schedule{
		Location: qibla.Coordinates{Latitude: lat, Longitude: lng},
		Date:     DateKey(date),
		Method:   astro.MethodByName(e.Method).Name,
		Fallback: true,
	}
	for i, f := range fallbackTable {
		t := time.Date(year, month, day, f.hour, f.minute, 0, 0, loc)
		if t.Before(now) {
			t = t.AddDate(0, 0, 1)
		}
		s.Events[i] = Event{Name: f.name, Time: t}
	}
	return s
}

// SelectNext picks the soonest strictly-future event from today's schedule,
// excluding Sunrise. When the whole day has passed it recomputes the
// following day at the same coordinates and returns that day's Fajr marked
// as tomorrow.
func (e *Engine) SelectNext(s Schedule, now time.Time) (Next, error) {
	var (
		best  Event
		found bool
	)
	for _, ev := range s.Events {
		if !ev.Name.Notifiable() {
			continue
		}
		diff := ev.Time.Sub(now)
		if diff <= 0 {
			continue
		}
		if !found || ev.Time.Before(best.Time) {
			best = ev
			found = true
		}
	}
	if found {
		return Next{Event: best}, nil
	}

	// Day rollover: tomorrow's Fajr at the same coordinates.
	tomorrow := now.AddDate(0, 0, 1)
	next, err := e.ComputeDay(s.Location.Latitude, s.Location.Longitude, tomorrow)
	if err != nil {
		return Next{}, err
	}
	fajr, ok := next.Event(Fajr)
	if !ok {
		return Next{}, errors.New(config.ErrNoEvents)
	}
	return Next{Event: fajr, Tomorrow: true}, nil
}
