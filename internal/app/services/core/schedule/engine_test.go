package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestParseClockFlex(t *testing.T) {
	t.Run("24-hour", func(t *testing.T) {
		c, ok := parseClockFlex("14:30")
		require.True(t, ok)
		assert.Equal(t, 14, c.H)
		assert.Equal(t, 30, c.M)
	})

	t.Run("12-hour with meridiem", func(t *testing.T) {
		c, ok := parseClockFlex("02:30 PM")
		require.True(t, ok)
		assert.Equal(t, 14, c.H)

		c, ok = parseClockFlex("12:15 AM")
		require.True(t, ok)
		assert.Equal(t, 0, c.H)

		c, ok = parseClockFlex("12:00 PM")
		require.True(t, ok)
		assert.Equal(t, 12, c.H)
	})

	t.Run("legacy bare afternoon hours", func(t *testing.T) {
		// Stored booking data writes 02:00-05:59 meaning afternoon.
		for hour, want := range map[string]int{"02:00": 14, "03:00": 15, "04:00": 16, "05:00": 17} {
			c, ok := parseClockFlex(hour)
			require.True(t, ok, hour)
			assert.Equal(t, want, c.H, hour)
		}
		// Outside the legacy band nothing shifts.
		c, ok := parseClockFlex("06:00")
		require.True(t, ok)
		assert.Equal(t, 6, c.H)
		c, ok = parseClockFlex("01:00")
		require.True(t, ok)
		assert.Equal(t, 1, c.H)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "nonsense", "25:00", "10:61", "13:00 PM"} {
			_, ok := parseClockFlex(raw)
			assert.False(t, ok, raw)
		}
	})
}

func TestComputeAvailableSlots(t *testing.T) {
	slots := []string{"09:00-09:30", "09:30-10:00", "14:00-14:30"}

	t.Run("today drops elapsed slots", func(t *testing.T) {
		now := mustTime(t, "2026-03-10 09:15")
		got := ComputeAvailableSlots(slots, "2026-03-10", now, 30, nil)
		assert.Equal(t, []string{"09:30-10:00", "14:00-14:30"}, got)
	})

	t.Run("slot starting exactly now is dropped", func(t *testing.T) {
		now := mustTime(t, "2026-03-10 09:30")
		got := ComputeAvailableSlots(slots, "2026-03-10", now, 30, nil)
		assert.Equal(t, []string{"14:00-14:30"}, got)
	})

	t.Run("other dates keep everything regardless of now", func(t *testing.T) {
		now := mustTime(t, "2026-03-10 23:59")
		got := ComputeAvailableSlots(slots, "2026-03-11", now, 30, nil)
		assert.Equal(t, slots, got)
	})

	t.Run("start-only slots default to the configured width", func(t *testing.T) {
		now := mustTime(t, "2026-03-10 09:15")
		got := ComputeAvailableSlots([]string{"09:00", "09:30"}, "2026-03-10", now, 30, nil)
		assert.Equal(t, []string{"09:30"}, got)
	})

	t.Run("malformed entries are skipped and reported", func(t *testing.T) {
		var skippedRaw []string
		got := ComputeAvailableSlots(
			[]string{"09:00-09:30", "garbage", "", "10:00-09:00"},
			"2026-03-11",
			mustTime(t, "2026-03-10 08:00"),
			30,
			func(raw string, err error) {
				skippedRaw = append(skippedRaw, raw)
				assert.Error(t, err)
			},
		)
		assert.Equal(t, []string{"09:00-09:30"}, got)
		assert.Equal(t, []string{"garbage", "", "10:00-09:00"}, skippedRaw)
	})

	t.Run("empty availability yields empty list", func(t *testing.T) {
		got := ComputeAvailableSlots(nil, "2026-03-11", mustTime(t, "2026-03-10 08:00"), 30, nil)
		assert.Empty(t, got)
	})
}

func TestClassifySlotAvailability(t *testing.T) {
	const capacity = 5
	slot := "09:00-09:30"

	cases := []struct {
		count     int
		status    SlotStatus
		remaining int
	}{
		{0, SlotStatusAvailable, 5},
		{2, SlotStatusAvailable, 3},
		{3, SlotStatusLimited, 2},
		{4, SlotStatusLimited, 1},
		{5, SlotStatusFull, 0},
		{7, SlotStatusFull, 0},
	}
	for _, tc := range cases {
		got := ClassifySlotAvailability(slot, map[string]int{slot: tc.count}, capacity)
		assert.Equal(t, tc.status, got.Status, "count=%d", tc.count)
		assert.Equal(t, tc.remaining, got.Remaining, "count=%d", tc.count)
	}

	t.Run("missing slot counts as zero bookings", func(t *testing.T) {
		got := ClassifySlotAvailability(slot, map[string]int{}, capacity)
		assert.Equal(t, SlotStatusAvailable, got.Status)
		assert.Equal(t, capacity, got.Remaining)
	})
}

func TestCanBook(t *testing.T) {
	const capacity = 5
	slot := "09:00-09:30"

	assert.True(t, CanBook(slot, map[string]int{slot: 4}, capacity))
	assert.False(t, CanBook(slot, map[string]int{slot: 5}, capacity))
	assert.False(t, CanBook(slot, map[string]int{slot: 6}, capacity))
	assert.True(t, CanBook(slot, map[string]int{}, capacity))
}

func TestSlotInPast(t *testing.T) {
	now := mustTime(t, "2026-03-10 09:15")

	t.Run("earlier date", func(t *testing.T) {
		past, err := SlotInPast("09:00-09:30", "2026-03-09", now, 30)
		require.NoError(t, err)
		assert.True(t, past)
	})

	t.Run("later date", func(t *testing.T) {
		past, err := SlotInPast("09:00-09:30", "2026-03-11", now, 30)
		require.NoError(t, err)
		assert.False(t, past)
	})

	t.Run("today compares against the slot end", func(t *testing.T) {
		past, err := SlotInPast("09:00-09:30", "2026-03-10", now, 30)
		require.NoError(t, err)
		assert.False(t, past)

		past, err = SlotInPast("08:30-09:00", "2026-03-10", now, 30)
		require.NoError(t, err)
		assert.True(t, past)
	})

	t.Run("malformed slot errors", func(t *testing.T) {
		_, err := SlotInPast("garbage", "2026-03-10", now, 30)
		assert.Error(t, err)
	})
}
