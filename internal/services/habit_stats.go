package services

import (
	"math"

	"lifelog/internal/core"
)

// HabitMonthStats summarizes one habit's completion for a calendar month.
type HabitMonthStats struct {
	Completed int `json:"completed"` // days marked done in the month
	Total     int `json:"total"`     // calendar days in the month
	Percent   int `json:"percent"`   // round(completed/total*100), 0 when total is 0
}

// MonthStats computes completion stats for the month containing ref.
// Invalid completed dates simply never match and are thereby skipped.
func MonthStats(h core.Habit, ref core.Day) HabitMonthStats {
	month := ref.Month()
	if !month.Valid() {
		return HabitMonthStats{}
	}
	stats := HabitMonthStats{Total: month.Days()}
	for _, d := range h.CompletedDates {
		if d.In(month) {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Percent = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// ToggleDate returns the completed-date set with day removed if present,
// added otherwise. The input slice is not mutated; toggling twice yields a
// set equal to the original. Other dates keep their relative order.
func ToggleDate(dates []core.Day, day core.Day) []core.Day {
	out := make([]core.Day, 0, len(dates)+1)
	removed := false
	for _, d := range dates {
		if d == day {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, day)
	}
	return out
}
