package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid Date", func(t *testing.T) {
		date, err := ParseDate("2025-12-16")

		assert.NoError(t, err)
		assert.Equal(t, 2025, date.Year())
		assert.Equal(t, 12, int(date.Month()))
		assert.Equal(t, 16, date.Day())
	})

	t.Run("Invalid Date", func(t *testing.T) {
		_, err := ParseDate("16-12-2025")
		assert.Error(t, err, "only YYYY-MM-DD should be accepted")

		_, err = ParseDate("not-a-date")
		assert.Error(t, err)
	})
}

func TestDayOfWeek(t *testing.T) {
	t.Run("Tuesday Is Day Two", func(t *testing.T) {
		date, err := ParseDate("2025-12-16")

		assert.NoError(t, err)
		assert.Equal(t, 2, DayOfWeek(date))
	})

	t.Run("Sunday Is Day Zero", func(t *testing.T) {
		date, err := ParseDate("2025-12-14")

		assert.NoError(t, err)
		assert.Equal(t, 0, DayOfWeek(date))
	})
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Sunday", DayName(0))
	assert.Equal(t, "Tuesday", DayName(2))
	assert.Equal(t, "Saturday", DayName(6))
	assert.Equal(t, "Unknown", DayName(7))
	assert.Equal(t, "Unknown", DayName(-1))
}

func TestIsTimeWithinRange(t *testing.T) {
	t.Run("Start Is Inclusive", func(t *testing.T) {
		assert.True(t, IsTimeWithinRange("09:00", "09:00", "12:00"))
	})

	t.Run("End Is Exclusive", func(t *testing.T) {
		assert.False(t, IsTimeWithinRange("12:00", "09:00", "12:00"))
	})

	t.Run("Inside The Window", func(t *testing.T) {
		assert.True(t, IsTimeWithinRange("10:30", "09:00", "12:00"))
	})

	t.Run("Outside The Window", func(t *testing.T) {
		assert.False(t, IsTimeWithinRange("08:59", "09:00", "12:00"))
		assert.False(t, IsTimeWithinRange("13:00", "09:00", "12:00"))
	})

	t.Run("Malformed Time", func(t *testing.T) {
		assert.False(t, IsTimeWithinRange("9am", "09:00", "12:00"))
	})
}

func TestIsValidTimeRange(t *testing.T) {
	assert.True(t, IsValidTimeRange("09:00", "17:00"))
	assert.False(t, IsValidTimeRange("17:00", "09:00"))
	assert.False(t, IsValidTimeRange("09:00", "09:00"), "zero-length windows are invalid")
	assert.False(t, IsValidTimeRange("nine", "17:00"))
}
