package astro_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/astro"
	"github.com/tartampluch/go-salat/internal/config"
)

// within asserts that a moment falls inside [from, to] on the same day.
func within(t *testing.T, moment time.Time, from, to string) {
	t.Helper()
	layout := "15:04"
	lo, err := time.Parse(layout, from)
	require.NoError(t, err)
	hi, err := time.Parse(layout, to)
	require.NoError(t, err)

	minutes := moment.Hour()*60 + moment.Minute()
	assert.GreaterOrEqual(t, minutes, lo.Hour()*60+lo.Minute(),
		"%s is earlier than %s", moment.Format(layout), from)
	assert.LessOrEqual(t, minutes, hi.Hour()*60+hi.Minute(),
		"%s is later than %s", moment.Format(layout), to)
}

func TestComputeTimes_EquatorEquinox(t *testing.T) {
	// At (0, 0) on an equinox the solar geometry is maximally symmetric:
	// sunrise near 06:00 UTC, solar noon near 12:07 (equation of time).
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	times, err := astro.ComputeTimes(0, 0, date, astro.MethodByName(config.MethodEgyptian))
	require.NoError(t, err)

	within(t, times.Fajr, "04:30", "05:10")
	within(t, times.Sunrise, "05:40", "06:25")
	within(t, times.Dhuhr, "11:50", "12:25")
	within(t, times.Asr, "15:00", "15:40")
	within(t, times.Maghrib, "17:50", "18:35")
	within(t, times.Isha, "19:05", "19:50")
}

func TestComputeTimes_StrictlyIncreasing(t *testing.T) {
	// London is only exercised in winter: at 51.5°N around the June solstice
	// astronomical twilight never ends and ComputeTimes correctly refuses.
	cases := []struct {
		name     string
		lat, lng float64
		dates    []time.Time
	}{
		{"Riyadh", 24.7136, 46.6753, []time.Time{
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		}},
		{"Cairo", 30.0444, 31.2357, []time.Time{
			time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		}},
		{"Jakarta", -6.2088, 106.8456, []time.Time{
			time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		}},
		{"London", 51.5074, -0.1278, []time.Time{
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		}},
		{"Santiago", -33.4489, -70.6693, []time.Time{
			time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		}},
	}

	for _, method := range config.CalculationMethods {
		for _, l := range cases {
			for _, d := range l.dates {
				times, err := astro.ComputeTimes(l.lat, l.lng, d, astro.MethodByName(method))
				require.NoError(t, err, "%s %s %s", method, l.name, d.Format(config.DateKeyLayout))

				ordered := times.Ordered()
				for i := 1; i < len(ordered); i++ {
					assert.True(t, ordered[i].After(ordered[i-1]),
						"%s %s %s: event %d not after event %d", method, l.name, d.Format(config.DateKeyLayout), i, i-1)
				}
			}
		}
	}
}

func TestComputeTimes_UmmAlQuraIshaInterval(t *testing.T) {
	date := time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC)

	times, err := astro.ComputeTimes(21.4225, 39.8262, date, astro.MethodByName(config.MethodUmmAlQura))
	require.NoError(t, err)

	assert.Equal(t, times.Maghrib.Add(90*time.Minute), times.Isha,
		"Umm al-Qura Isha must be exactly 90 minutes after Maghrib")
}

func TestComputeTimes_InputErrors(t *testing.T) {
	date := time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC)
	m := astro.MethodByName(config.DefaultMethod)

	_, err := astro.ComputeTimes(95, 0, date, m)
	assert.ErrorIs(t, err, astro.ErrLatitudeRange)

	_, err = astro.ComputeTimes(0, 200, date, m)
	assert.ErrorIs(t, err, astro.ErrLongitudeRange)

	_, err = astro.ComputeTimes(0, 0, time.Time{}, m)
	assert.ErrorIs(t, err, astro.ErrDateZero)
}

func TestComputeTimes_PolarDay(t *testing.T) {
	// Longyearbyen in June: the sun never sets, so the horizon crossing is undefined.
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	_, err := astro.ComputeTimes(78.2232, 15.6267, date, astro.MethodByName(config.MethodEgyptian))
	assert.ErrorIs(t, err, astro.ErrNoSunEvent)
}

func TestMethodByName_UnknownFallsBack(t *testing.T) {
	m := astro.MethodByName("NoSuchMethod")
	assert.Equal(t, config.DefaultMethod, m.Name)

	for _, name := range config.CalculationMethods {
		assert.Equal(t, name, astro.MethodByName(name).Name)
	}
}

func TestComputeTimes_TimezoneRespected(t *testing.T) {
	// The same instant computed in a named zone must carry that zone.
	loc, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	date := time.Date(2025, 8, 28, 0, 0, 0, 0, loc)

	times, err := astro.ComputeTimes(24.7136, 46.6753, date, astro.MethodByName(config.MethodUmmAlQura))
	require.NoError(t, err)

	assert.Equal(t, loc, times.Dhuhr.Location())
	// Riyadh is ~13 minutes of longitude east of its zone meridian, so solar
	// noon lands a little before 12:00 local, shifted by the equation of time.
	within(t, times.Dhuhr, "11:30", "12:20")
}
