// Package civil provides calendar-date arithmetic without clocks or zones.
package civil

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Date is a calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse converts an ISO "2006-01-02" string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return Date{}, fmt.Errorf("civil: parse %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse parses the input and panics on error. Intended for tests/config.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime truncates a time.Time to its calendar day in the time's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in local time.
func Today() Date {
	return FromTime(time.Now())
}

// String renders the ISO form, or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.toTime().Format(layoutISO)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d. Negative n steps backward.
func (d Date) AddDays(n int) Date {
	return FromTime(d.toTime().AddDate(0, 0, n))
}

// AddMonths shifts d by n calendar months, clamping the day to the target
// month's length (January 31 plus one month is February 28 or 29).
func (d Date) AddMonths(n int) Date {
	y := d.Year
	m := int(d.Month) - 1 + n
	y += m / 12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	month := time.Month(m + 1)
	day := d.Day
	if max := DaysInMonth(y, month); day > max {
		day = max
	}
	return Date{Year: y, Month: month, Day: day}
}

// Next returns the following calendar day.
func (d Date) Next() Date { return d.AddDays(1) }

// Prev returns the preceding calendar day.
func (d Date) Prev() Date { return d.AddDays(-1) }

// Weekday returns the day of week for d.
func (d Date) Weekday() time.Weekday {
	return d.toTime().Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Compare returns -1, 0, or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// DaysBetween returns the number of calendar days from a to b. Positive when
// b is later than a.
func DaysBetween(a, b Date) int {
	return int(b.toTime().Sub(a.toTime()) / (24 * time.Hour))
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of the given month.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// MonthEnd returns the last day of d's month.
func (d Date) MonthEnd() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// WeekStart returns the Monday of the week containing d.
func (d Date) WeekStart() Date {
	wd := int(d.Weekday())
	if wd == 0 { // Sunday belongs to the week that started six days earlier
		wd = 7
	}
	return d.AddDays(1 - wd)
}

// YearStart returns January 1 of d's year.
func (d Date) YearStart() Date {
	return Date{Year: d.Year, Month: time.January, Day: 1}
}

// YearEnd returns December 31 of d's year.
func (d Date) YearEnd() Date {
	return Date{Year: d.Year, Month: time.December, Day: 31}
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// MarshalText implements encoding.TextMarshaler using the ISO layout, which
// also covers JSON object keys and string fields.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input yields
// the zero Date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
