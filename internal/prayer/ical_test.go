package prayer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/prayer"
)

func TestSchedule_ICS(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 8, 28, 10, 0, 0, 0, time.UTC)}
	s := riyadhDay(t, clock)

	data, err := s.ICS(clock.CurrentTime, 5*time.Minute, func(n prayer.Name) string {
		return "Prayer: " + string(n)
	})
	require.NoError(t, err)

	ics := string(data)
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "SUMMARY:Prayer: Fajr")
	assert.Contains(t, ics, "UID:2025-08-28-Fajr@gosalat")
	assert.Contains(t, ics, "TRIGGER:-PT5M")

	// Five alarms: every event except Sunrise.
	assert.Equal(t, 5, strings.Count(ics, "BEGIN:VALARM"))
	assert.Equal(t, 6, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestSchedule_ICS_NoReminder(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 8, 28, 10, 0, 0, 0, time.UTC)}
	s := riyadhDay(t, clock)

	data, err := s.ICS(clock.CurrentTime, 0, nil)
	require.NoError(t, err)

	ics := string(data)
	assert.NotContains(t, ics, "VALARM")
	assert.Contains(t, ics, "SUMMARY:Isha")
}
