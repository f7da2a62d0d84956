// Package hijri converts Gregorian dates to the Islamic lunar calendar using
// the deterministic tabular (civil) intercalation scheme. The conversion is
// pure integer arithmetic with no locale or I/O dependencies.
package hijri

import (
	"fmt"
	"time"
)

// Date is a Hijri calendar date.
type Date struct {
	Year  int
	Month int // 1..12, Muharram = 1
	Day   int // 1..30
}

// String renders the date as YYYY-MM-DD, the same shape the Gregorian date
// keys use elsewhere.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// civilEpoch is the Julian day number of 1 Muharram 1 AH (Friday epoch).
const civilEpoch = 1948440

// FromTime converts the calendar date of t (in t's own time zone) to Hijri.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return fromJulianDay(julianDayNumber(year, int(month), day))
}

// julianDayNumber implements the Fliegel-Van Flandern algorithm, which is
// exact under truncating integer division.
func julianDayNumber(year, month, day int) int {
	a := (month - 14) / 12
	jd := (1461 * (year + 4800 + a)) / 4
	jd += (367 * (month - 2 - 12*a)) / 12
	jd -= (3 * ((year + 4900 + a) / 100)) / 4
	return jd + day - 32075
}

// fromJulianDay applies the tabular calendar arithmetic (30-year cycle with
// 11 leap years) to a Julian day number.
func fromJulianDay(jd int) Date {
	l := jd - civilEpoch + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354

	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29

	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return Date{Year: year, Month: month, Day: day}
}
