package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/service"
)

// loadRequest is the JSON body for load create and update.
type loadRequest struct {
	CustomerName string            `json:"customer_name"`
	TrustLevel   domain.TrustLevel `json:"trust_level"`
	Role         domain.LoadRole   `json:"role"`

	RFDDate    *jsonDate `json:"rfd_date"`
	RFDDateTBD bool      `json:"rfd_date_tbd"`

	ContractRatePerCuft  *float64              `json:"contract_rate_per_cuft"`
	ContractAccessorials domain.AccessorialSet `json:"contract_accessorials"`
	ActualCuftLoaded     *float64              `json:"actual_cuft_loaded"`
	ExtraAccessorials    domain.AccessorialSet `json:"extra_accessorials"`

	StorageMoveInFee  *float64 `json:"storage_move_in_fee"`
	StorageDailyFee   *float64 `json:"storage_daily_fee"`
	StorageDaysBilled *float64 `json:"storage_days_billed"`

	AmountCollectedOnDelivery   *float64 `json:"amount_collected_on_delivery"`
	AmountPaidDirectlyToCompany *float64 `json:"amount_paid_directly_to_company"`
	BalanceDueOnDelivery        *float64 `json:"balance_due_on_delivery"`
}

func (req loadRequest) toDomain(id uuid.UUID) domain.Load {
	l := domain.Load{
		ID:                          id,
		CustomerName:                req.CustomerName,
		TrustLevel:                  req.TrustLevel,
		Role:                        req.Role,
		RFDDateTBD:                  req.RFDDateTBD,
		ContractRatePerCuft:         req.ContractRatePerCuft,
		ContractAccessorials:        req.ContractAccessorials,
		ActualCuftLoaded:            req.ActualCuftLoaded,
		ExtraAccessorials:           req.ExtraAccessorials,
		StorageMoveInFee:            req.StorageMoveInFee,
		StorageDailyFee:             req.StorageDailyFee,
		StorageDaysBilled:           req.StorageDaysBilled,
		AmountCollectedOnDelivery:   req.AmountCollectedOnDelivery,
		AmountPaidDirectlyToCompany: req.AmountPaidDirectlyToCompany,
		BalanceDueOnDelivery:        req.BalanceDueOnDelivery,
	}
	if req.RFDDate != nil {
		rfd := req.RFDDate.Time
		l.RFDDate = &rfd
	}
	return l
}

// CreateLoad handles POST /loads.
func (s *Server) CreateLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.loads.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListLoads handles GET /loads.
// Supports ?page=, ?limit=, ?unassigned=true, and ?urgency=<tier>.
func (s *Server) ListLoads(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	unassignedOnly := r.URL.Query().Get("unassigned") == "true"

	details, total, err := s.loads.List(r.Context(), params, unassignedOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	// Urgency is computed, not stored, so the tier filter applies after the
	// page is fetched.
	if tier := r.URL.Query().Get("urgency"); tier != "" {
		filtered := make([]service.LoadDetail, 0, len(details))
		for _, d := range details {
			if d.Urgency == tier {
				filtered = append(filtered, d)
			}
		}
		details = filtered
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []service.LoadDetail `json:"data"`
		Pagination Pagination           `json:"pagination"`
	}{
		Data:       details,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetLoad handles GET /loads/{loadID}. The response carries the computed
// revenue, COD decision, and urgency alongside the stored record.
func (s *Server) GetLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "loadID")
	if err != nil {
		writeBadRequest(w, "invalid load id")
		return
	}

	detail, err := s.loads.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateLoad handles PUT /loads/{loadID}.
func (s *Server) UpdateLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "loadID")
	if err != nil {
		writeBadRequest(w, "invalid load id")
		return
	}
	var req loadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.loads.Update(r.Context(), req.toDomain(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteLoad handles DELETE /loads/{loadID}.
func (s *Server) DeleteLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "loadID")
	if err != nil {
		writeBadRequest(w, "invalid load id")
		return
	}
	if err := s.loads.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeliverLoad handles POST /loads/{loadID}/deliver. When the COD evaluator
// requires a collection, the body must carry confirm_cod=true or the request
// fails with 409. An empty body means no confirmation.
func (s *Server) DeliverLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "loadID")
	if err != nil {
		writeBadRequest(w, "invalid load id")
		return
	}
	var req struct {
		ConfirmCOD bool `json:"confirm_cod"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	detail, err := s.loads.MarkDelivered(r.Context(), id, req.ConfirmCOD)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
