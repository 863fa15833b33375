//go:build unit

package daterange_test

import (
	"testing"
	"time"

	"villabook/internal/domain/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := daterange.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(from, to string) daterange.Range {
	return daterange.MustNew(day(from), day(to))
}

func TestNew(t *testing.T) {
	t.Run("normalizes to UTC midnight", func(t *testing.T) {
		kolkata := time.FixedZone("IST", 19800)
		from := time.Date(2026, 10, 1, 23, 30, 0, 0, kolkata)
		to := time.Date(2026, 10, 4, 0, 30, 0, 0, kolkata)

		r, err := daterange.New(from, to)
		require.NoError(t, err)
		assert.Equal(t, day("2026-10-01"), r.From())
		assert.Equal(t, day("2026-10-03"), r.To())
	})

	t.Run("single day range is valid", func(t *testing.T) {
		r, err := daterange.New(day("2026-10-01"), day("2026-10-01"))
		require.NoError(t, err)
		assert.Equal(t, r.From(), r.To())
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, err := daterange.New(day("2026-10-05"), day("2026-10-01"))
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}

func TestNights(t *testing.T) {
	tests := []struct {
		name string
		r    daterange.Range
		want int
	}{
		{"three nights", rng("2026-10-01", "2026-10-04"), 3},
		{"one night", rng("2026-10-01", "2026-10-02"), 1},
		{"same day clamps to one", rng("2026-10-01", "2026-10-01"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Nights())
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b daterange.Range
		want bool
	}{
		{"disjoint", rng("2026-10-01", "2026-10-03"), rng("2026-10-05", "2026-10-07"), false},
		{"contained", rng("2026-10-01", "2026-10-10"), rng("2026-10-03", "2026-10-05"), true},
		{"partial", rng("2026-10-01", "2026-10-05"), rng("2026-10-04", "2026-10-08"), true},
		// Checkout day blocks a new check-in on the same unit.
		{"shared boundary day", rng("2026-10-01", "2026-10-04"), rng("2026-10-04", "2026-10-07"), true},
		{"adjacent days do not overlap", rng("2026-10-01", "2026-10-03"), rng("2026-10-04", "2026-10-06"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 10, daterange.DaysUntil(day("2026-10-01"), day("2026-10-11")))
	assert.Equal(t, 0, daterange.DaysUntil(day("2026-10-01"), day("2026-10-01")))
	assert.Equal(t, -3, daterange.DaysUntil(day("2026-10-04"), day("2026-10-01")))
}

func TestMerge(t *testing.T) {
	t.Run("folds overlapping and adjacent", func(t *testing.T) {
		got := daterange.Merge([]daterange.Range{
			rng("2026-10-08", "2026-10-10"),
			rng("2026-10-01", "2026-10-03"),
			rng("2026-10-03", "2026-10-05"),
			rng("2026-10-06", "2026-10-07"),
		})
		// 01-05 overlaps then 06-07 is adjacent to 05, 08-10 adjacent again.
		require.Len(t, got, 1)
		assert.Equal(t, rng("2026-10-01", "2026-10-10"), got[0])
	})

	t.Run("keeps gaps", func(t *testing.T) {
		got := daterange.Merge([]daterange.Range{
			rng("2026-10-01", "2026-10-02"),
			rng("2026-10-10", "2026-10-12"),
		})
		require.Len(t, got, 2)
		assert.Equal(t, rng("2026-10-01", "2026-10-02"), got[0])
		assert.Equal(t, rng("2026-10-10", "2026-10-12"), got[1])
	})

	t.Run("order independent and idempotent", func(t *testing.T) {
		a := []daterange.Range{
			rng("2026-10-05", "2026-10-08"),
			rng("2026-10-01", "2026-10-03"),
			rng("2026-10-02", "2026-10-06"),
		}
		b := []daterange.Range{a[1], a[2], a[0]}

		mergedA := daterange.Merge(a)
		mergedB := daterange.Merge(b)
		assert.Equal(t, mergedA, mergedB)
		assert.Equal(t, mergedA, daterange.Merge(mergedA))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, daterange.Merge(nil))
	})
}

func TestParse(t *testing.T) {
	t.Run("date-only strings", func(t *testing.T) {
		r, err := daterange.Parse("2026-10-01", "2026-10-04")
		require.NoError(t, err)
		assert.Equal(t, "2026-10-01..2026-10-04", r.String())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := daterange.Parse("not-a-date", "2026-10-04")
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}
