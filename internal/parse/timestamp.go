package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseHeaderTime turns the date, time and optional AM/PM marker of a header
// line into a timestamp. Dates are month/day/year; two-digit years are 20xx.
func parseHeaderTime(dateStr, timeStr, ampm string) (time.Time, error) {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", dateStr)
	}
	yearStr := parts[2]
	switch len(yearStr) {
	case 2:
		yearStr = "20" + yearStr
	case 4:
	default:
		return time.Time{}, fmt.Errorf("invalid year %q", parts[2])
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q", parts[0])
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", parts[1])
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return time.Time{}, fmt.Errorf("invalid year %q", parts[2])
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("day %d out of range for %s %d", day, time.Month(month), year)
	}

	hour, minute, err := parseClock(timeStr, ampm)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// parseClock reads H:MM. With an AM/PM marker the hour is on a 12-hour clock
// (12 AM is midnight, 12 PM is noon); without one it is already 24-hour.
func parseClock(timeStr, ampm string) (int, int, error) {
	h, m, ok := strings.Cut(timeStr, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed time %q", timeStr)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q", h)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute %q", m)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range", minute)
	}

	switch ampm {
	case "":
		if hour < 0 || hour > 23 {
			return 0, 0, fmt.Errorf("hour %d out of range", hour)
		}
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("hour %d out of range for %s", hour, ampm)
		}
		hour %= 12
		if ampm == "PM" {
			hour += 12
		}
	default:
		return 0, 0, errors.New("unknown day period " + ampm)
	}
	return hour, minute, nil
}

func daysIn(month time.Month, year int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
