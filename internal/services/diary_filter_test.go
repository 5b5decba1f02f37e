package services

import (
	"testing"

	"lifelog/internal/core"
)

func entry(date core.Day, content string) core.DiaryEntry {
	return core.DiaryEntry{Date: date, Content: content}
}

func TestFilterDiary(t *testing.T) {
	entries := []core.DiaryEntry{
		entry("2024-05-01", "Went hiking today"),
		entry("2024-05-01", "Second note for the same day"),
		entry("2024-05-15", "Rainy afternoon, read a book"),
		entry("2024-06-02", "HIKING again, new trail"),
	}

	tests := []struct {
		name  string
		query DiaryQuery
		want  int
	}{
		{"no filters", DiaryQuery{}, 4},
		{"search is case-insensitive", DiaryQuery{Search: "hiking"}, 2},
		{"search with no hits", DiaryQuery{Search: "snow"}, 0},
		{"exact date keeps both same-day entries", DiaryQuery{Mode: DiaryByDate, Value: "2024-05-01"}, 2},
		{"month prefix", DiaryQuery{Mode: DiaryByMonth, Value: "2024-05"}, 3},
		{"search and month combine", DiaryQuery{Search: "hiking", Mode: DiaryByMonth, Value: "2024-06"}, 1},
		{"empty value lifts the date constraint", DiaryQuery{Mode: DiaryByDate, Value: ""}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDiary(entries, tt.query)
			if len(got) != tt.want {
				t.Errorf("expected %d entries, got %d", tt.want, len(got))
			}
		})
	}
}

func TestDiaryCounts(t *testing.T) {
	entries := []core.DiaryEntry{
		entry("2024-05-12", "sunday"),
		entry("2024-05-15", "wednesday"),
		entry("2024-05-18", "saturday"),
		entry("2024-05-19", "next sunday"),
		entry("2024-04-30", "last month"),
	}

	// 2024-05-15 is a Wednesday; its week runs 2024-05-12 through 2024-05-18.
	if got := DiaryWeekCount(entries, "2024-05-15"); got != 3 {
		t.Errorf("expected 3 entries this week, got %d", got)
	}
	if got := DiaryMonthCount(entries, "2024-05-15"); got != 4 {
		t.Errorf("expected 4 entries this month, got %d", got)
	}
	if got := DiaryWeekCount(entries, "not-a-date"); got != 0 {
		t.Errorf("expected 0 for an invalid reference date, got %d", got)
	}
}

func TestRandomDiaryEntry(t *testing.T) {
	if _, ok := RandomDiaryEntry(nil, func(int) int { return 0 }); ok {
		t.Error("expected no draw from an empty collection")
	}

	entries := []core.DiaryEntry{
		entry("2024-05-01", "a"),
		entry("2024-05-02", "b"),
		entry("2024-05-03", "c"),
	}
	got, ok := RandomDiaryEntry(entries, func(n int) int {
		if n != 3 {
			t.Fatalf("expected draw over 3 entries, got %d", n)
		}
		return 1
	})
	if !ok || got.Content != "b" {
		t.Errorf("expected entry b, got %+v (ok=%v)", got, ok)
	}
}

func TestDiaryPreview(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantPreview string
		wantLong    bool
	}{
		{"single line", "short", "short", false},
		{"exactly three lines", "a\nb\nc", "a\nb\nc", false},
		{"four lines truncates to three", "a\nb\nc\nd", "a\nb\nc", true},
		{"empty content", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, long := DiaryPreview(tt.content)
			if preview != tt.wantPreview || long != tt.wantLong {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.wantPreview, tt.wantLong, preview, long)
			}
		})
	}
}
