package services

import (
	"fmt"
	"time"
)

// Day is a calendar day without a time of day. All "is this today" decisions
// compare Day values so a timestamp's clock component can never leak into
// responsibility or check logic.
type Day struct {
	year  int
	month time.Month
	day   int
}

func NewDay(value time.Time, location *time.Location) Day {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return Day{year: year, month: month, day: day}
}

func Today(location *time.Location) Day {
	return NewDay(time.Now(), location)
}

func ParseDay(raw string) (Day, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	year, month, day := parsed.Date()
	return Day{year: year, month: month, day: day}, nil
}

func (d Day) Equal(other Day) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// SameAs reports whether the instant falls on this calendar day in the given
// location.
func (d Day) SameAs(value time.Time, location *time.Location) bool {
	return d.Equal(NewDay(value, location))
}

// Weekday returns the day of week as 0 (Sunday) through 6 (Saturday).
func (d Day) Weekday() int {
	return int(d.Start(time.UTC).Weekday())
}

// Start returns midnight at the beginning of the day in the given location.
func (d Day) Start(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, location)
}

// Range returns the half-open [start, next day start) interval used by
// day-scoped storage queries.
func (d Day) Range(location *time.Location) (time.Time, time.Time) {
	start := d.Start(location)
	return start, start.AddDate(0, 0, 1)
}

func (d Day) AddDays(count int) Day {
	shifted := d.Start(time.UTC).AddDate(0, 0, count)
	year, month, day := shifted.Date()
	return Day{year: year, month: month, day: day}
}

// DaysUntil returns the signed number of calendar days from d to other.
func (d Day) DaysUntil(other Day) int {
	from := d.Start(time.UTC)
	to := other.Start(time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func (d Day) Before(other Day) bool {
	return d.Start(time.UTC).Before(other.Start(time.UTC))
}

func (d Day) String() string {
	return d.Start(time.UTC).Format("2006-01-02")
}
