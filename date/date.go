// Package date provides a calendar date value type with day granularity,
// and a lenient parser for the date spellings found in broker exports.
package date

import (
	"fmt"
	"time"
)

// Format is the format used to represent dates as strings in ISO-8601 format.
const Format = "2006-01-02"

// readFormats are the layouts accepted by Parse, tried in order. Broker CSV
// exports are not consistent about date spelling, so the parser is permissive.
var readFormats = []string{
	"2006-1-2", // ISO, single digit month/day allowed
	"2006/1/2",
	"1/2/2006", // US
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to, or
// after x. It is suitable for use with the slices sorting functions.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(Format) }

// Parse parses a Date from a string. It is lenient: it accepts the layouts in
// readFormats, so "2025-7-1", "7/1/2025" and "Jul 1, 2025" all parse to the
// same day.
func Parse(str string) (Date, error) {
	for _, layout := range readFormats {
		if on, err := time.Parse(layout, str); err == nil {
			return New(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want a format like %q", str, Format)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
