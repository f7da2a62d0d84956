package prayer

import (
	"strings"
	"time"
)

// arabicDigits maps '0'..'9' to Eastern Arabic numerals.
var arabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// ToArabicNumerals replaces every ASCII digit with its Eastern Arabic form.
// Non-digit runes pass through unchanged.
func ToArabicNumerals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(arabicDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatClock renders a moment as a zero-padded 24-hour HH:MM string,
// optionally with Eastern Arabic digits.
func FormatClock(t time.Time, arabic bool) string {
	s := t.Format("15:04")
	if arabic {
		return ToArabicNumerals(s)
	}
	return s
}

// SplitHoursMinutes decomposes a countdown duration for display.
// Negative durations collapse to zero.
func SplitHoursMinutes(d time.Duration) (hours, minutes int) {
	if d <= 0 {
		return 0, 0
	}
	hours = int(d / time.Hour)
	minutes = int((d % time.Hour) / time.Minute)
	return hours, minutes
}
