package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// tripRequest is the JSON body for trip create and update.
type tripRequest struct {
	Name        string           `json:"name"`
	DriverName  string           `json:"driver_name"`
	Pay         domain.PayConfig `json:"pay"`
	StartDate   jsonDate         `json:"start_date"`
	EndDate     *jsonDate        `json:"end_date"`
	TotalMiles  *float64         `json:"total_miles"`
	ActualMiles *float64         `json:"actual_miles"`
}

func (req tripRequest) toDomain(id uuid.UUID) domain.Trip {
	t := domain.Trip{
		ID:          id,
		Name:        req.Name,
		DriverName:  req.DriverName,
		Pay:         req.Pay,
		StartDate:   req.StartDate.Time,
		TotalMiles:  req.TotalMiles,
		ActualMiles: req.ActualMiles,
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		t.EndDate = &ed
	}
	return t
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []domain.Trip `json:"data"`
		Pagination Pagination    `json:"pagination"`
	}{
		Data:       trips,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetTrip handles GET /trips/{tripID}. The response includes the trip's
// attached loads in route order.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	detail, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), req.toDomain(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TransitionTrip handles POST /trips/{tripID}/transition.
func (s *Server) TransitionTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	var req struct {
		Status domain.TripStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	trip, err := s.trips.Transition(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CancelTrip handles POST /trips/{tripID}/cancel.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	trip, err := s.trips.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// AttachLoad handles POST /trips/{tripID}/loads.
func (s *Server) AttachLoad(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	var req struct {
		LoadID uuid.UUID       `json:"load_id"`
		Role   domain.LoadRole `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Role == "" {
		req.Role = domain.RolePrimary
	}

	load, err := s.trips.AttachLoad(r.Context(), tripID, req.LoadID, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, load)
}

// DetachLoad handles DELETE /trips/{tripID}/loads/{loadID}.
func (s *Server) DetachLoad(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	loadID, err := pathUUID(r, "loadID")
	if err != nil {
		writeBadRequest(w, "invalid load id")
		return
	}

	if err := s.trips.DetachLoad(r.Context(), tripID, loadID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderLoads handles PUT /trips/{tripID}/loads/order.
func (s *Server) ReorderLoads(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	var req struct {
		LoadIDs []uuid.UUID `json:"load_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.trips.ReorderLoads(r.Context(), tripID, req.LoadIDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewSettlement handles GET /trips/{tripID}/settlement/preview.
func (s *Server) PreviewSettlement(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	settlement, err := s.trips.Preview(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

// SettleTrip handles POST /trips/{tripID}/settlement.
func (s *Server) SettleTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	settlement, err := s.trips.Settle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

// RecalculateTrip handles POST /trips/{tripID}/settlement/recalculate.
func (s *Server) RecalculateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}
	settlement, err := s.trips.Recalculate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}
