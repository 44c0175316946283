package types

import (
	"fmt"
	"time"
)

const civilDateLayout = "2006-01-02"

// CivilDate is a calendar day with no time-of-day or timezone offset
// attached. Every campaign-window comparison happens on civil dates in the
// organisation's timezone, so the deployment host's local timezone can
// never shift a day boundary.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCivilDate parses a YYYY-MM-DD string.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid civil date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}, nil
}

// MustCivilDate is ParseCivilDate for static values in tests and fixtures.
func MustCivilDate(s string) CivilDate {
	d, err := ParseCivilDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TodayIn returns the civil date of the given instant in the given location.
func TodayIn(now time.Time, loc *time.Location) CivilDate {
	y, m, d := now.In(loc).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// epochDays pins the date to UTC midnight so the count is pure calendar
// arithmetic, never elapsed-hours division across a DST transition.
func (d CivilDate) epochDays() int {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return int(t.Unix() / 86400)
}

// DaysBetween returns b minus a in whole calendar days. Negative when b
// precedes a.
func DaysBetween(a, b CivilDate) int {
	return b.epochDays() - a.epochDays()
}

// AddDays returns the civil date n days after d, rolling over months and
// years. n may be negative.
func (d CivilDate) AddDays(n int) CivilDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return CivilDate{Year: y, Month: m, Day: day}
}

func (d CivilDate) Before(other CivilDate) bool {
	return d.epochDays() < other.epochDays()
}

func (d CivilDate) After(other CivilDate) bool {
	return d.epochDays() > other.epochDays()
}

func (d CivilDate) Equal(other CivilDate) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// MidnightIn returns the instant the civil day begins in loc.
func (d CivilDate) MidnightIn(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDayIn returns the last second of the civil day in loc.
func (d CivilDate) EndOfDayIn(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc)
}

// MarshalJSON encodes the date as its YYYY-MM-DD string.
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *CivilDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid civil date %s", s)
	}
	parsed, err := ParseCivilDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
