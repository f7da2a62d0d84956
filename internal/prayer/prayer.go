// Package prayer holds the prayer-day model: the six canonical events, the
// day schedule computed by the astronomical engine, the next-prayer
// selection, and the display formatting helpers.
//
// Status flags (passed/next) are never stored on events; they are derived
// fresh from (events, now) on every read so concurrent readers of a cached
// schedule can never observe stale flags.
package prayer

import (
	"time"

	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/qibla"
)

// Name is the symbolic identifier of a canonical prayer (or sunrise).
type Name string

const (
	Fajr    Name = "Fajr"
	Sunrise Name = "Sunrise"
	Dhuhr   Name = "Dhuhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Order is the fixed chronological order of the day's events.
var Order = [6]Name{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// Notifiable reports whether the event triggers notifications.
// Sunrise is displayed but never announced.
func (n Name) Notifiable() bool {
	return n != Sunrise
}

// Event is one prayer (or sunrise) moment for a specific date and location.
type Event struct {
	Name Name      `json:"name"`
	Time time.Time `json:"time"`
}

// Passed reports whether the event lies in the past at the evaluation time.
func (e Event) Passed(now time.Time) bool {
	return e.Time.Before(now)
}

// Schedule is the full computed day for one (location, date) pair, plus the
// staleness key fields used by the cache.
type Schedule struct {
	Events   [6]Event          `json:"events"`
	Location qibla.Coordinates `json:"location"`
	Date     string            `json:"date"` // calendar date key, YYYY-MM-DD
	Method   string            `json:"method"`

	// Fallback marks a degraded computation recovered via the fixed local
	// schedule. Callers may surface it; the events remain displayable.
	Fallback bool `json:"fallback"`
}

// Event returns the day's event with the given name.
func (s Schedule) Event(name Name) (Event, bool) {
	for _, e := range s.Events {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}

// Next is the pointer to the event judged "next": either one of today's
// events or tomorrow's Fajr after the day has run out.
type Next struct {
	Event    Event `json:"event"`
	Tomorrow bool  `json:"tomorrow"`
}

// IsNext reports whether the given today-event is the selected one.
// Tomorrow's Fajr never marks a today-event.
func (n Next) IsNext(e Event) bool {
	return !n.Tomorrow && n.Event.Name == e.Name && n.Event.Time.Equal(e.Time)
}

// Remaining returns the time left until the selected event, never negative.
func (n Next) Remaining(now time.Time) time.Duration {
	d := n.Event.Time.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// DateKey formats the calendar date of t as the cache/idempotency key.
func DateKey(t time.Time) string {
	return t.Format(config.DateKeyLayout)
}
