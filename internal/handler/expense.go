package handler

import (
	"net/http"
	"time"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// expenseRequest is the JSON body for recording an expense.
type expenseRequest struct {
	Category   domain.ExpenseCategory `json:"category"`
	Amount     float64                `json:"amount"`
	IncurredAt time.Time              `json:"incurred_at"`
	ReceiptRef string                 `json:"receipt_ref"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.expenses.Create(r.Context(), domain.Expense{
		TripID:     tripID,
		Category:   req.Category,
		Amount:     req.Amount,
		IncurredAt: req.IncurredAt,
		ReceiptRef: req.ReceiptRef,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	expenses, err := s.expenses.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []domain.Expense `json:"data"`
	}{Data: expenses})
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	expenseID, err := pathUUID(r, "expenseID")
	if err != nil {
		writeBadRequest(w, "invalid expense id")
		return
	}

	if err := s.expenses.Delete(r.Context(), tripID, expenseID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
