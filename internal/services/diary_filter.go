package services

import (
	"strings"

	"lifelog/internal/core"
)

// DiaryDateMode selects how DiaryQuery.Value constrains entry dates.
type DiaryDateMode string

const (
	DiaryByDate  DiaryDateMode = "date"  // exact YYYY-MM-DD match
	DiaryByMonth DiaryDateMode = "month" // YYYY-MM prefix match
)

// diaryPreviewLines is the number of leading lines shown for a long entry.
const diaryPreviewLines = 3

// DiaryQuery carries the diary timeline filters. An empty Search matches
// every entry; an empty Value lifts the date constraint.
type DiaryQuery struct {
	Search string
	Mode   DiaryDateMode
	Value  string
}

// FilterDiary returns the entries whose content contains the search string
// (case-insensitive) and whose date satisfies the mode/value constraint.
func FilterDiary(entries []core.DiaryEntry, q DiaryQuery) []core.DiaryEntry {
	search := strings.ToLower(q.Search)
	out := make([]core.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Content), search) {
			continue
		}
		if q.Value != "" {
			switch q.Mode {
			case DiaryByMonth:
				if !e.Date.In(core.Month(q.Value)) {
					continue
				}
			default: // DiaryByDate
				if string(e.Date) != q.Value {
					continue
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// DiaryMonthCount counts the entries dated in today's calendar month.
func DiaryMonthCount(entries []core.DiaryEntry, today core.Day) int {
	month := today.Month()
	if month == "" {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.Date.In(month) {
			n++
		}
	}
	return n
}

// DiaryWeekCount counts the entries dated in the Sunday-to-Saturday week
// containing today.
func DiaryWeekCount(entries []core.DiaryEntry, today core.Day) int {
	week, err := core.WeekWindow(today)
	if err != nil {
		return 0
	}
	start, end := week[0], week[6]
	n := 0
	for _, e := range entries {
		if e.Date.Valid() && e.Date >= start && e.Date <= end {
			n++
		}
	}
	return n
}

// RandomDiaryEntry draws one entry uniformly from the full collection.
// The intn source is injected so callers can make the draw deterministic;
// it must return a value in [0, n).
func RandomDiaryEntry(entries []core.DiaryEntry, intn func(n int) int) (core.DiaryEntry, bool) {
	if len(entries) == 0 {
		return core.DiaryEntry{}, false
	}
	return entries[intn(len(entries))], true
}

// DiaryPreview returns the truncated preview of an entry's content and
// whether the entry is long enough to need one. Content spanning more than
// three lines is long; its preview is the first three lines.
func DiaryPreview(content string) (preview string, long bool) {
	lines := strings.Split(content, "\n")
	if len(lines) <= diaryPreviewLines {
		return content, false
	}
	return strings.Join(lines[:diaryPreviewLines], "\n"), true
}
