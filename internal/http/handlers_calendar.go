package http

import (
	"fmt"
	"net/http"
	"strings"

	"lifelog/internal/core"
	"lifelog/internal/services"
)

// handleCalendarMonth serves the per-day status markers for one calendar
// month (default: the current one).
func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	month := core.Month(strings.TrimSpace(r.URL.Query().Get("month")))
	if month == "" {
		month = core.Today().Month()
	}
	if !month.Valid() {
		writeBadRequest(w, "month must be a YYYY-MM month")
		return
	}

	ctx := r.Context()
	expenses, err := s.backend.ListExpenses(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := s.backend.ListDiaryEntries(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	todos, err := s.backend.ListTodos(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	habits, err := s.backend.ListHabits(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	statuses := make(map[core.Day]services.DayStatus, month.Days())
	for day := 1; day <= month.Days(); day++ {
		date := core.Day(fmt.Sprintf("%s-%02d", month, day))
		statuses[date] = services.StatusOf(date, expenses, entries, todos, habits)
	}
	writeJSON(w, http.StatusOK, statuses)
}

// handleCalendarDay serves everything recorded on one date. Details are
// cached per date until any collection changes.
func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	date := core.Day(r.PathValue("date"))
	if !date.Valid() {
		writeBadRequest(w, "date must be a YYYY-MM-DD date")
		return
	}

	if detail, ok := s.dayCache.Get(string(date)); ok {
		writeJSON(w, http.StatusOK, detail)
		return
	}

	ctx := r.Context()
	expenses, err := s.backend.ListExpenses(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := s.backend.ListDiaryEntries(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	todos, err := s.backend.ListTodos(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	habits, err := s.backend.ListHabits(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	detail := services.DetailOf(date, expenses, entries, todos, habits)
	s.dayCache.Set(string(date), detail)
	writeJSON(w, http.StatusOK, detail)
}
