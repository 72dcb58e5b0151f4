package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// ErrorResponse is the envelope every error body uses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination echoes the effective paging parameters back to the client.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// and swallowed; by then the status line has already gone out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// writeError maps a service error onto the HTTP error taxonomy:
//
//	ErrNotFound                → 404 not_found
//	ErrValidation              → 422 validation_error
//	ErrInvalidConfig           → 422 invalid_config
//	ErrCODConfirmationRequired → 409 cod_confirmation_required
//	anything else              → 500 internal_error
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code: "not_found", Message: "resource not found",
		}})
	case errors.Is(err, domain.ErrCODConfirmationRequired):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code: "cod_confirmation_required", Message: "delivery requires COD collection; resubmit with confirm_cod=true",
		}})
	case errors.Is(err, domain.ErrInvalidConfig):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "invalid_config", Message: sentinelMessage(err, domain.ErrInvalidConfig),
		}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "validation_error", Message: sentinelMessage(err, domain.ErrValidation),
		}})
	default:
		slog.Error("handler: internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code: "internal_error", Message: "internal server error",
		}})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (malformed body, bad path parameter).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
		Code: "validation_error", Message: message,
	}})
}

// sentinelMessage extracts the human-readable tail from a wrapped sentinel,
// e.g. "service.TripService.Update: validation error: name is required"
// → "name is required".
func sentinelMessage(err error, sentinel error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, sentinel.Error()+": "); idx >= 0 {
		return msg[idx+len(sentinel.Error())+2:]
	}
	return msg
}

// decodeJSON decodes a request body into v, rejecting unknown fields so
// client typos surface as errors instead of silently dropped input.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// pathUUID parses a UUID route parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryPagination reads ?page= and ?limit= into PaginationParams.
func queryPagination(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// jsonDate marshals as a plain "2006-01-02" date. Trip and load dates are
// calendar dates; carrying a timestamp would invite timezone drift.
type jsonDate struct {
	time.Time
}

func (d jsonDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
