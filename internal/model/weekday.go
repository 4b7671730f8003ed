package model

import (
	"fmt"
	"slices"
	"strings"
)

// Weekday is a short day tag used by reminders.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Week lists every weekday in calendar order, Monday first.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var fullNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseWeekday accepts a tag such as "mon", "Mon" or "monday".
func ParseWeekday(raw string) (Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for i, day := range Week {
		if value == strings.ToLower(string(day)) || value == fullNames[i] {
			return day, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

func (d Weekday) Valid() bool {
	return slices.Contains(Week, d)
}

// SortDays returns a copy of days in calendar order with duplicates removed.
func SortDays(days []Weekday) []Weekday {
	out := make([]Weekday, 0, len(days))
	for _, day := range Week {
		if slices.Contains(days, day) {
			out = append(out, day)
		}
	}
	return out
}

// JoinDays renders days as "Mon, Wed, Fri".
func JoinDays(days []Weekday) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, string(day))
	}
	return strings.Join(parts, ", ")
}
