package http

import (
	"net/http"

	"lifelog/internal/core"
	"lifelog/internal/services"
)

type expenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// handleExpenseReport serves the filtered, sorted, paginated, summarized
// expense view. Responses are cached per query string until the expense
// collection changes or the TTL passes.
func (s *Server) handleExpenseReport(w http.ResponseWriter, r *http.Request) {
	query := s.parseExpenseQuery(r)

	key := r.URL.RawQuery
	if report, ok := s.reportCache.Get(key); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	expenses, err := s.backend.ListExpenses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	report := services.BuildExpenseReport(expenses, query)
	s.reportCache.Set(key, report)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	e, err := s.records.AddExpense(r.Context(),
		sanitizeInput(req.Amount),
		sanitizeInput(req.Category),
		sanitizeInput(req.Description),
		core.Day(sanitizeInput(req.Date)))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	err := s.records.UpdateExpense(r.Context(), r.PathValue("id"),
		sanitizeInput(req.Amount),
		sanitizeInput(req.Category),
		sanitizeInput(req.Description),
		core.Day(sanitizeInput(req.Date)))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
