package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lifelog/internal/core"
	"lifelog/internal/services"
	"lifelog/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses: not-found to 404,
// validation failures to 400, everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyContent),
		errors.Is(err, core.ErrEmptyText),
		errors.Is(err, core.ErrEmptyName):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseExpenseQuery reads the report parameters off the query string.
// Absent values mean "no constraint"; a bad page number falls back to 1.
func (s *Server) parseExpenseQuery(r *http.Request) services.ExpenseQuery {
	q := r.URL.Query()

	query := services.ExpenseQuery{
		Month:    core.Month(strings.TrimSpace(q.Get("month"))),
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		From:     core.Day(strings.TrimSpace(q.Get("from"))),
		To:       core.Day(strings.TrimSpace(q.Get("to"))),
		Sort:     services.SortOrder(q.Get("sort")),
		Page:     1,
		PageSize: s.defaultPageSize,
	}
	if query.Sort == "" {
		query.Sort = services.SortDateDesc
	}
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			query.Page = p
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			query.PageSize = n
		}
	}
	return query
}

// sanitizeInput trims whitespace and strips control characters other than
// tab and newline.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
