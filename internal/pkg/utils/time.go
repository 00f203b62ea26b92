package utils

import (
	"time"

	"medika-service/internal/pkg/constvars"
)

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constvars.AppDateLayout, value)
}

// DayOfWeek returns the day index for a date with Sunday as 0 and Saturday
// as 6, matching how schedules store their day column.
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DayName maps a stored day index back to its English name.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return "Unknown"
	}
	return dayNames[day]
}

// IsTimeWithinRange reports whether a requested HH:MM value falls inside a
// schedule window, inclusive of the start and exclusive of the end.
func IsTimeWithinRange(requestedTime, startTime, endTime string) bool {
	requested, err := time.Parse(constvars.AppTimeLayout, requestedTime)
	if err != nil {
		return false
	}
	start, err := time.Parse(constvars.AppTimeLayout, startTime)
	if err != nil {
		return false
	}
	end, err := time.Parse(constvars.AppTimeLayout, endTime)
	if err != nil {
		return false
	}

	return requested.Equal(start) || (requested.After(start) && requested.Before(end))
}

// IsValidTimeRange reports whether start is strictly before end, both HH:MM.
func IsValidTimeRange(startTime, endTime string) bool {
	start, err := time.Parse(constvars.AppTimeLayout, startTime)
	if err != nil {
		return false
	}
	end, err := time.Parse(constvars.AppTimeLayout, endTime)
	if err != nil {
		return false
	}
	return start.Before(end)
}
