package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/prayer"
)

// fixedClock pins the evaluation time for label formatting.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// newTestApp builds a minimal app with loaded locales. By being in package
// 'ui', the private helpers are reachable.
func newTestApp(t *testing.T) *GoSalatApp {
	t.Helper()
	a := test.NewApp()
	app := &GoSalatApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         context.Background(),
		Clock:       fixedClock{t: time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)},
	}
	app.SetupI18n()
	return app
}

func TestGetMsg_Localization(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "Fajr", app.PrayerLabel(prayer.Fajr))
	assert.Equal(t, "Qibla", app.GetMsg(config.TKeyTabQibla))

	// Missing keys fall back to the key itself.
	assert.Equal(t, "nope_missing", app.GetMsg("nope_missing"))

	app.Preferences.SetString(config.PrefLanguage, "ar")
	app.UpdateLocalizer()
	assert.Equal(t, "الفجر", app.PrayerLabel(prayer.Fajr))
	assert.Equal(t, "ar", app.Language())
}

func TestRemainingLabel(t *testing.T) {
	app := newTestApp(t)
	now := app.Clock.Now()

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"HoursAndMinutes", now.Add(2*time.Hour + 5*time.Minute), "in 2h 5m"},
		{"MinutesOnly", now.Add(42 * time.Minute), "in 42m"},
		{"Now", now, "now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := prayer.Next{Event: prayer.Event{Name: prayer.Asr, Time: tt.at}}
			assert.Equal(t, tt.want, app.remainingLabel(next, now))
		})
	}
}

func TestBuildNotifMessages(t *testing.T) {
	app := newTestApp(t)
	msgs := app.buildNotifMessages()
	require.NotNil(t, msgs.Exact)
	require.NotNil(t, msgs.Before)

	title, body := msgs.Exact(prayer.Maghrib)
	assert.Equal(t, "Maghrib prayer time", title)
	assert.Equal(t, "It is now time for Maghrib prayer.", body)

	title, body = msgs.Before(prayer.Isha, 5)
	assert.Equal(t, "Upcoming: Isha", title)
	assert.Equal(t, "Isha prayer begins in 5 minutes.", body)
}

func TestPrayerTKey_Fallback(t *testing.T) {
	assert.Equal(t, config.TKeyPrayerDhuhr, prayerTKey(prayer.Dhuhr))
	assert.Equal(t, "Unknown", prayerTKey(prayer.Name("Unknown")))
}
