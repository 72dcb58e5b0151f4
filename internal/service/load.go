package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/dispatch"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/finance"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// LoadService implements business logic for Load operations, including the
// delivery workflow with its COD gate.
type LoadService struct {
	loads repo.LoadRepo

	// now is injected so urgency classification and delivery stamps are
	// deterministic in tests. Defaults to time.Now.
	now func() time.Time

	// codFallbackRate is the company-level default rate per cuft for the
	// COD evaluator. Nil when the company has no default.
	codFallbackRate *float64
}

// NewLoadService constructs a LoadService backed by the provided repo.
func NewLoadService(loads repo.LoadRepo) *LoadService {
	return &LoadService{loads: loads, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *LoadService) WithClock(now func() time.Time) *LoadService {
	s.now = now
	return s
}

// WithCODFallbackRate sets the company default rate per cuft used by the COD
// evaluator when a load carries no contract rate.
func (s *LoadService) WithCODFallbackRate(rate *float64) *LoadService {
	s.codFallbackRate = rate
	return s
}

// LoadDetail is a load with its computed financial and dispatch views
// attached. The stored record never carries these — they are recomputed on
// every read so they can never go stale.
type LoadDetail struct {
	Load    domain.Load         `json:"load"`
	Revenue finance.LoadRevenue `json:"revenue"`
	COD     finance.CODDecision `json:"cod"`
	Urgency string              `json:"urgency"`
	Badge   string              `json:"badge,omitempty"`
}

// Create validates and persists a new load. An absent trust level defaults
// to cod_required — fail-safe toward collecting payment.
func (s *LoadService) Create(ctx context.Context, load domain.Load) (domain.Load, error) {
	applyLoadDefaults(&load)
	if err := validateLoad(load); err != nil {
		return domain.Load{}, err
	}

	result, err := s.loads.Create(ctx, load)
	if err != nil {
		return domain.Load{}, fmt.Errorf("service.LoadService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a load with computed revenue, COD decision, and urgency.
func (s *LoadService) GetByID(ctx context.Context, id uuid.UUID) (LoadDetail, error) {
	load, err := s.loads.GetByID(ctx, id)
	if err != nil {
		return LoadDetail{}, fmt.Errorf("service.LoadService.GetByID: %w", err)
	}
	return s.detail(load), nil
}

// List returns one page of loads, optionally only unassigned ones.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LoadService) List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]LoadDetail, int64, error) {
	loads, total, err := s.loads.List(ctx, p, unassignedOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LoadService.List: %w", err)
	}

	details := make([]LoadDetail, 0, len(loads))
	for _, l := range loads {
		details = append(details, s.detail(l))
	}
	return details, total, nil
}

// Update validates and persists changes to an existing load.
func (s *LoadService) Update(ctx context.Context, load domain.Load) (domain.Load, error) {
	applyLoadDefaults(&load)
	if err := validateLoad(load); err != nil {
		return domain.Load{}, err
	}

	result, err := s.loads.Update(ctx, load)
	if err != nil {
		return domain.Load{}, fmt.Errorf("service.LoadService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a load by ID.
func (s *LoadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.loads.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LoadService.Delete: %w", err)
	}
	return nil
}

// MarkDelivered completes a load's delivery. When the COD evaluator says a
// collection is required, the caller must pass codConfirmed=true — the flag
// is the dispatcher's assertion that the cash was actually taken. The
// evaluator only ever decides whether confirmation is needed; it is the
// workflow here that enforces it.
func (s *LoadService) MarkDelivered(ctx context.Context, id uuid.UUID, codConfirmed bool) (LoadDetail, error) {
	load, err := s.loads.GetByID(ctx, id)
	if err != nil {
		return LoadDetail{}, fmt.Errorf("service.LoadService.MarkDelivered: %w", err)
	}
	if load.DeliveredAt != nil {
		return LoadDetail{}, fmt.Errorf("%w: load already delivered", domain.ErrValidation)
	}

	decision := finance.EvaluateCOD(load.TrustLevel, load, s.codFallbackRate)
	if decision.Required && !codConfirmed {
		return LoadDetail{}, fmt.Errorf("service.LoadService.MarkDelivered: %w", domain.ErrCODConfirmationRequired)
	}

	deliveredAt := s.now()
	if err := s.loads.SetDelivered(ctx, id, deliveredAt); err != nil {
		return LoadDetail{}, fmt.Errorf("service.LoadService.MarkDelivered: %w", err)
	}

	load.DeliveredAt = &deliveredAt
	return s.detail(load), nil
}

// detail attaches the computed financial and dispatch views to a load.
func (s *LoadService) detail(load domain.Load) LoadDetail {
	urgency := dispatch.ClassifyLoad(load, s.now())
	return LoadDetail{
		Load:    load,
		Revenue: finance.ComputeLoadRevenue(load),
		COD:     finance.EvaluateCOD(load.TrustLevel, load, s.codFallbackRate),
		Urgency: urgency.String(),
		Badge:   urgency.Label(),
	}
}

// applyLoadDefaults fills the fail-safe defaults for absent enum fields.
func applyLoadDefaults(load *domain.Load) {
	if load.TrustLevel == "" {
		load.TrustLevel = domain.TrustCODRequired
	}
	if load.Role == "" {
		load.Role = domain.RolePrimary
	}
}

// validateLoad enforces business rules common to both Create and Update.
func validateLoad(load domain.Load) error {
	if strings.TrimSpace(load.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name is required", domain.ErrValidation)
	}
	if !load.TrustLevel.Valid() {
		return fmt.Errorf("%w: unknown trust level %q", domain.ErrValidation, load.TrustLevel)
	}
	if !load.Role.Valid() {
		return fmt.Errorf("%w: unknown load role %q", domain.ErrValidation, load.Role)
	}
	for name, v := range map[string]*float64{
		"contract_rate_per_cuft": load.ContractRatePerCuft,
		"actual_cuft_loaded":     load.ActualCuftLoaded,
		"storage_move_in_fee":    load.StorageMoveInFee,
		"storage_daily_fee":      load.StorageDailyFee,
		"storage_days_billed":    load.StorageDaysBilled,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
		}
	}
	return nil
}
