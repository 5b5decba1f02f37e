package http

import (
	"math/rand"
	"net/http"
	"strings"

	"lifelog/internal/core"
	"lifelog/internal/services"
)

type diaryEntryView struct {
	core.DiaryEntry
	Preview string `json:"preview"`
	Long    bool   `json:"long"`
}

func diaryView(e core.DiaryEntry) diaryEntryView {
	preview, long := services.DiaryPreview(e.Content)
	return diaryEntryView{DiaryEntry: e, Preview: preview, Long: long}
}

// handleDiaryList serves the filtered diary timeline. mode=date matches one
// exact day, mode=month a YYYY-MM prefix; search is case-insensitive.
func (s *Server) handleDiaryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.DiaryQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Mode:   services.DiaryDateMode(q.Get("mode")),
		Value:  strings.TrimSpace(q.Get("value")),
	}

	entries, err := s.backend.ListDiaryEntries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := services.FilterDiary(entries, query)
	views := make([]diaryEntryView, 0, len(filtered))
	for _, e := range filtered {
		views = append(views, diaryView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDiaryStats(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.ListDiaryEntries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	today := core.Today()
	writeJSON(w, http.StatusOK, map[string]int{
		"total":     len(entries),
		"thisMonth": services.DiaryMonthCount(entries, today),
		"thisWeek":  services.DiaryWeekCount(entries, today),
	})
}

// handleDiaryRandom draws one entry uniformly from the whole collection.
func (s *Server) handleDiaryRandom(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.ListDiaryEntries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entry, ok := services.RandomDiaryEntry(entries, rand.Intn)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no diary entries yet"})
		return
	}
	writeJSON(w, http.StatusOK, diaryView(entry))
}

type diaryRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (s *Server) handleCreateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	e, err := s.records.AddDiaryEntry(r.Context(), core.Day(sanitizeInput(req.Date)), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.records.UpdateDiaryEntry(r.Context(), r.PathValue("id"), req.Content); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteDiaryEntry(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
