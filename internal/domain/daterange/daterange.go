// Package daterange provides the calendar-day interval primitive used by
// availability and pricing. All values are normalized to UTC midnight so the
// same stay serializes identically on the read and write paths regardless of
// the caller's timezone.
package daterange

import (
	"errors"
	"sort"
	"time"
)

// DayFormat is the wire format for calendar days. Date-only on purpose: a
// time-of-day component is how local-midnight vs UTC-midnight drift sneaks in.
const DayFormat = "2006-01-02"

var ErrInvalidRange = errors.New("invalid date range: end before start")

// Range is a closed calendar-day interval [From, To], inclusive on both ends
// for conflict purposes. Nights counts the checkout day as exclusive.
type Range struct {
	from time.Time
	to   time.Time
}

// Normalize strips the time-of-day and fixes the representation to UTC
// midnight. Every date must pass through here before comparison or storage.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// New normalizes both endpoints and requires from <= to. Single-day ranges
// (from == to) are valid; blackouts use them.
func New(from, to time.Time) (Range, error) {
	f := Normalize(from)
	t := Normalize(to)
	if t.Before(f) {
		return Range{}, ErrInvalidRange
	}
	return Range{from: f, to: t}, nil
}

// MustNew panics on an invalid range. For tests and static fixtures only.
func MustNew(from, to time.Time) Range {
	r, err := New(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

func Parse(fromStr, toStr string) (Range, error) {
	from, err := ParseDay(fromStr)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	to, err := ParseDay(toStr)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	return New(from, to)
}

func (r Range) From() time.Time { return r.from }
func (r Range) To() time.Time   { return r.to }

func (r Range) IsZero() bool { return r.from.IsZero() && r.to.IsZero() }

// Nights counts billable nights, checkout day exclusive, clamped to a minimum
// of one: no stay is ever priced at zero nights.
func (r Range) Nights() int {
	n := int(r.to.Sub(r.from).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// Overlaps reports inclusive-boundary overlap. A range ending on day X
// conflicts with a range starting on day X: the checkout day is unavailable
// for a new check-in on the same unit.
func (r Range) Overlaps(other Range) bool {
	return !(r.to.Before(other.from) || r.from.After(other.to))
}

// AdjacentTo reports whether one range's end immediately precedes the other's
// start. Adjacent ranges are merge candidates.
func (r Range) AdjacentTo(other Range) bool {
	return r.to.AddDate(0, 0, 1).Equal(other.from) || other.to.AddDate(0, 0, 1).Equal(r.from)
}

func (r Range) String() string {
	return r.from.Format(DayFormat) + ".." + r.to.Format(DayFormat)
}

// DaysUntil returns the whole calendar days from day a to day b. Both inputs
// are normalized first; a result of 0 means the same day, negative means b is
// in the past relative to a.
func DaysUntil(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// Merge sorts the ranges ascending by start and folds overlapping or adjacent
// ones into single intervals. The output is deterministic regardless of input
// order, always sorted ascending, and merging an already merged set is a
// no-op.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].from.Equal(sorted[j].from) {
			return sorted[i].from.Before(sorted[j].from)
		}
		return sorted[i].to.Before(sorted[j].to)
	})

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Overlaps(r) || last.AdjacentTo(r) {
			if r.to.After(last.to) {
				last.to = r.to
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
