package services

import (
	"testing"

	"lifelog/internal/core"
)

func TestMonthStats(t *testing.T) {
	tests := []struct {
		name      string
		completed []core.Day
		ref       core.Day
		want      HabitMonthStats
	}{
		{
			name:      "leap february",
			completed: []core.Day{"2024-02-10", "2024-02-11", "2024-03-01"},
			ref:       "2024-02-20",
			want:      HabitMonthStats{Completed: 2, Total: 29, Percent: 7},
		},
		{
			name:      "plain february",
			completed: []core.Day{"2023-02-10"},
			ref:       "2023-02-01",
			want:      HabitMonthStats{Completed: 1, Total: 28, Percent: 4},
		},
		{
			name:      "rounds half up",
			completed: []core.Day{"2024-04-01", "2024-04-02", "2024-04-03", "2024-04-04", "2024-04-05", "2024-04-06", "2024-04-07"},
			ref:       "2024-04-15",
			want:      HabitMonthStats{Completed: 7, Total: 30, Percent: 23},
		},
		{
			name:      "empty month",
			completed: nil,
			ref:       "2024-05-01",
			want:      HabitMonthStats{Completed: 0, Total: 31, Percent: 0},
		},
		{
			name:      "invalid completed dates are skipped",
			completed: []core.Day{"2024-05-01", "garbage", "2024-5-1"},
			ref:       "2024-05-01",
			want:      HabitMonthStats{Completed: 1, Total: 31, Percent: 3},
		},
		{
			name:      "invalid reference yields zero stats",
			completed: []core.Day{"2024-05-01"},
			ref:       "nope",
			want:      HabitMonthStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := core.Habit{Name: "run", CompletedDates: tt.completed}
			got := MonthStats(h, tt.ref)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestToggleDate(t *testing.T) {
	original := []core.Day{"2024-05-01", "2024-05-03"}

	added := ToggleDate(original, "2024-05-02")
	if len(added) != 3 || added[2] != "2024-05-02" {
		t.Fatalf("expected date appended, got %v", added)
	}
	if len(original) != 2 {
		t.Fatalf("input slice was mutated: %v", original)
	}

	removed := ToggleDate(added, "2024-05-02")
	if len(removed) != 2 || removed[0] != original[0] || removed[1] != original[1] {
		t.Errorf("toggling twice must restore the set, got %v", removed)
	}

	// Removing keeps the relative order of the rest.
	rest := ToggleDate([]core.Day{"a", "b", "c"}, "b")
	if len(rest) != 2 || rest[0] != "a" || rest[1] != "c" {
		t.Errorf("expected [a c], got %v", rest)
	}
}
