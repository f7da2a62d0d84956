package hijri_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-salat/internal/hijri"
)

func TestFromTime_KnownDates(t *testing.T) {
	tests := []struct {
		name      string
		gregorian time.Time
		want      hijri.Date
	}{
		{
			// The tabular epoch itself.
			name:      "epoch",
			gregorian: time.Date(622, 7, 19, 12, 0, 0, 0, time.UTC),
			want:      hijri.Date{Year: 1, Month: 1, Day: 1},
		},
		{
			// Well-known reference pair: J2000.
			name:      "j2000",
			gregorian: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			want:      hijri.Date{Year: 1420, Month: 9, Day: 24},
		},
		{
			name:      "rabi-al-awwal-1447",
			gregorian: time.Date(2025, 8, 28, 18, 30, 0, 0, time.UTC),
			want:      hijri.Date{Year: 1447, Month: 3, Day: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hijri.FromTime(tt.gregorian))
		})
	}
}

func TestFromTime_Monotonic(t *testing.T) {
	// Consecutive Gregorian days never move the Hijri date backwards and
	// never jump by more than one day.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := hijri.FromTime(start)

	for i := 1; i < 800; i++ {
		cur := hijri.FromTime(start.AddDate(0, 0, i))

		if cur.Month == prev.Month && cur.Year == prev.Year {
			assert.Equal(t, prev.Day+1, cur.Day)
		} else {
			assert.Equal(t, 1, cur.Day, "month rollover must land on day 1 (was %v -> %v)", prev, cur)
			assert.GreaterOrEqual(t, prev.Day, 29, "months are 29 or 30 days (was %v)", prev)
		}
		prev = cur
	}
}

func TestDate_String(t *testing.T) {
	d := hijri.Date{Year: 1447, Month: 3, Day: 4}
	assert.Equal(t, "1447-03-04", d.String())
}
