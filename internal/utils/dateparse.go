package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	agoPattern     = regexp.MustCompile(`^(\d+)([dwmy])\s+ago$`)
	periodsPattern = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)$`)
)

// ParseFlexibleDate resolves --since style input to a calendar day in the
// location of now. It accepts "today", "yesterday", "last week", "this month",
// "3 days", "2w ago" and common absolute layouts.
func ParseFlexibleDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	loc := now.Location()
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch input {
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	case "last week":
		return midnight(now.AddDate(0, 0, -7)), nil
	case "last month":
		return midnight(now.AddDate(0, -1, 0)), nil
	case "last year":
		return midnight(now.AddDate(-1, 0, 0)), nil
	case "this week":
		weekday := int(now.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		return midnight(now.AddDate(0, 0, -(weekday - 1))), nil
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	case "this year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
	}

	if m := agoPattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		return midnight(shift(now, n, m[2])), nil
	}
	if m := periodsPattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		return midnight(shift(now, n, m[2][:1])), nil
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// shift moves now back n units of d(ay), w(eek), m(onth) or y(ear).
func shift(now time.Time, n int, unit string) time.Time {
	switch unit {
	case "w":
		return now.AddDate(0, 0, -7*n)
	case "m":
		return now.AddDate(0, -n, 0)
	case "y":
		return now.AddDate(-n, 0, 0)
	default:
		return now.AddDate(0, 0, -n)
	}
}
