package daterange

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("end date must be after start date")

const Layout = time.DateOnly

// Overlaps treats both pairs as half-open intervals [start, end).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Day truncates t to midnight UTC of its calendar date in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open range of calendar days: the end day itself is free.
type DateRange struct {
	start time.Time
	end   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if !s.Before(e) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

// FromInclusive converts a closed [start, last] day span into the half-open form.
// A span whose last day is not after its first is rejected.
func FromInclusive(start, last time.Time) (DateRange, error) {
	s, l := Day(start), Day(last)
	if !s.Before(l) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: l.AddDate(0, 0, 1)}, nil
}

func Parse(start, end string) (DateRange, error) {
	s, err := time.Parse(Layout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse start date: %w", err)
	}
	e, err := time.Parse(Layout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse end date: %w", err)
	}
	return New(s, e)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// LastDay is the final occupied day, one day before End.
func (r DateRange) LastDay() time.Time { return r.end.AddDate(0, 0, -1) }

func (r DateRange) IsZero() bool { return r.start.IsZero() && r.end.IsZero() }

func (r DateRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return Overlaps(r.start, r.end, other.start, other.end)
}

func (r DateRange) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.start) && d.Before(r.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(Layout), r.end.Format(Layout))
}
