//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func iv(t *testing.T, startH, startM, endH, endM int) schedule.Interval {
	t.Helper()
	interval, err := schedule.NewInterval(at(startH, startM), at(endH, endM))
	require.NoError(t, err)
	return interval
}

func TestNewInterval(t *testing.T) {
	_, err := schedule.NewInterval(at(10, 0), at(9, 0))
	assert.ErrorIs(t, err, schedule.ErrInvalidInterval)

	_, err = schedule.NewInterval(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b schedule.Interval
		want bool
	}{
		{name: "disjoint", a: iv(t, 9, 0, 10, 0), b: iv(t, 11, 0, 12, 0), want: false},
		{name: "partial overlap", a: iv(t, 9, 0, 10, 30), b: iv(t, 10, 0, 11, 0), want: true},
		{name: "containment", a: iv(t, 9, 0, 12, 0), b: iv(t, 10, 0, 11, 0), want: true},
		{name: "identical", a: iv(t, 9, 0, 10, 0), b: iv(t, 9, 0, 10, 0), want: true},
		{name: "touching boundary is not overlap", a: iv(t, 9, 0, 10, 0), b: iv(t, 10, 0, 11, 0), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestContains(t *testing.T) {
	interval := iv(t, 9, 0, 10, 0)
	assert.True(t, interval.Contains(at(9, 0)), "start is inside a half-open interval")
	assert.True(t, interval.Contains(at(9, 59)))
	assert.False(t, interval.Contains(at(10, 0)), "end is outside a half-open interval")
	assert.False(t, interval.Contains(at(8, 59)))
}

func TestClip(t *testing.T) {
	bound := iv(t, 9, 0, 17, 0)

	clipped, ok := iv(t, 8, 0, 10, 0).Clip(bound)
	require.True(t, ok)
	assert.Equal(t, iv(t, 9, 0, 10, 0), clipped)

	clipped, ok = iv(t, 16, 0, 18, 0).Clip(bound)
	require.True(t, ok)
	assert.Equal(t, iv(t, 16, 0, 17, 0), clipped)

	_, ok = iv(t, 18, 0, 19, 0).Clip(bound)
	assert.False(t, ok, "fully outside the bound leaves nothing")
}

func TestMerge(t *testing.T) {
	t.Run("coalesces overlapping and touching runs", func(t *testing.T) {
		// "7-10:30" and "10-11" become one "7-11" run.
		got := schedule.Merge([]schedule.Interval{
			iv(t, 7, 0, 10, 30),
			iv(t, 10, 0, 11, 0),
			iv(t, 11, 0, 11, 30), // touching boundary merges too
			iv(t, 14, 0, 16, 0),
		})
		want := []schedule.Interval{
			iv(t, 7, 0, 11, 30),
			iv(t, 14, 0, 16, 0),
		}
		assert.Empty(t, cmp.Diff(want, got))
	})

	t.Run("orders by start time", func(t *testing.T) {
		got := schedule.Merge([]schedule.Interval{
			iv(t, 18, 0, 22, 0),
			iv(t, 11, 30, 14, 30),
		})
		require.Len(t, got, 2)
		assert.True(t, got[0].Start.Before(got[1].Start))
	})

	t.Run("idempotent", func(t *testing.T) {
		periods := []schedule.Interval{
			iv(t, 7, 0, 10, 30),
			iv(t, 10, 0, 11, 0),
			iv(t, 18, 0, 22, 0),
		}
		once := schedule.Merge(periods)
		twice := schedule.Merge(once)
		assert.Empty(t, cmp.Diff(once, twice))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, schedule.Merge(nil))
	})
}
