package http

import (
	"net/http"
	"strings"

	"lifelog/internal/core"
	"lifelog/internal/services"
	"lifelog/internal/store"
)

type habitView struct {
	core.Habit
	Stats services.HabitMonthStats `json:"stats"`
}

// handleHabitList serves every habit with its completion stats for the
// month of ref (default today).
func (s *Server) handleHabitList(w http.ResponseWriter, r *http.Request) {
	ref := core.Day(strings.TrimSpace(r.URL.Query().Get("ref")))
	if ref == "" {
		ref = core.Today()
	}
	if !ref.Valid() {
		writeBadRequest(w, "ref must be a YYYY-MM-DD date")
		return
	}

	habits, err := s.backend.ListHabits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]habitView, 0, len(habits))
	for _, h := range habits {
		views = append(views, habitView{Habit: h, Stats: services.MonthStats(h, ref)})
	}
	writeJSON(w, http.StatusOK, views)
}

type habitRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	h, err := s.records.AddHabit(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleRenameHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.records.RenameHabit(r.Context(), r.PathValue("id"), sanitizeInput(req.Name)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type habitToggleRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	var req habitToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	day := core.Day(sanitizeInput(req.Date))
	if day == "" {
		day = core.Today()
	}

	done, err := s.records.ToggleHabit(r.Context(), r.PathValue("id"), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day, "done": done})
}

type habitWeekDay struct {
	Date core.Day `json:"date"`
	Done bool     `json:"done"`
}

// handleHabitWeek serves the Sunday-to-Saturday completion strip for the
// week containing ref (default today).
func (s *Server) handleHabitWeek(w http.ResponseWriter, r *http.Request) {
	ref := core.Day(strings.TrimSpace(r.URL.Query().Get("ref")))
	if ref == "" {
		ref = core.Today()
	}
	week, err := core.WeekWindow(ref)
	if err != nil {
		writeBadRequest(w, "ref must be a YYYY-MM-DD date")
		return
	}

	habits, err := s.backend.ListHabits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	id := r.PathValue("id")
	for _, h := range habits {
		if h.ID != id {
			continue
		}
		days := make([]habitWeekDay, len(week))
		for i, d := range week {
			days[i] = habitWeekDay{Date: d, Done: h.DoneOn(d)}
		}
		writeJSON(w, http.StatusOK, days)
		return
	}
	writeError(w, store.ErrNotFound)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteHabit(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
