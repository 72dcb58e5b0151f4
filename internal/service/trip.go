// Package service contains the business logic for the MoveBoss API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// finance-engine calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/finance"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// TripService implements business logic for Trip operations, including the
// settlement workflow. It holds the loads and expenses repos as well because
// settling a trip reads its whole financial picture.
type TripService struct {
	trips    repo.TripRepo
	loads    repo.LoadRepo
	expenses repo.ExpenseRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, loads repo.LoadRepo, expenses repo.ExpenseRepo) *TripService {
	return &TripService{trips: trips, loads: loads, expenses: expenses}
}

// TripDetail is a trip plus its attached loads in route order.
type TripDetail struct {
	Trip  domain.Trip   `json:"trip"`
	Loads []domain.Load `json:"loads"`
}

// Create validates and persists a new trip. New trips always start planned
// with zeroed rollups, whatever the caller sent.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.Status = domain.TripPlanned

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip with its loads.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (TripDetail, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}

	loads, err := s.loads.ListByTripID(ctx, id)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if loads == nil {
		loads = []domain.Load{}
	}

	return TripDetail{Trip: trip, Loads: loads}, nil
}

// List returns one page of trips.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip's mutable fields.
// Settled trips are frozen: edits would silently desync the persisted
// rollups, so they are rejected until an explicit recalculate.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	current, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if current.Status == domain.TripSettled {
		return domain.Trip{}, fmt.Errorf("%w: settled trip is frozen; use recalculate", domain.ErrValidation)
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Transition moves a trip along its lifecycle. Illegal transitions are
// validation errors, not config errors: the status graph is fixed and the
// request simply asked for a move the graph does not allow.
func (s *TripService) Transition(ctx context.Context, id uuid.UUID, next domain.TripStatus) (domain.Trip, error) {
	if !next.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Transition: %w", err)
	}
	if !trip.Status.CanTransitionTo(next) {
		return domain.Trip{}, fmt.Errorf("%w: cannot move trip from %s to %s", domain.ErrValidation, trip.Status, next)
	}

	// Settling is more than a status flip — route it through Settle so the
	// rollups are always written together with the status.
	if next == domain.TripSettled {
		if _, err := s.Settle(ctx, id); err != nil {
			return domain.Trip{}, err
		}
		trip, err = s.trips.GetByID(ctx, id)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Transition: %w", err)
		}
		return trip, nil
	}

	if err := s.trips.UpdateStatus(ctx, id, next); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Transition: %w", err)
	}
	trip.Status = next
	return trip, nil
}

// Cancel terminates a trip without settlement.
func (s *TripService) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.Transition(ctx, id, domain.TripCancelled)
}

// AttachLoad attaches a load to the end of the trip's route. A load already
// on another trip moves over — single-owner, last assignment wins.
func (s *TripService) AttachLoad(ctx context.Context, tripID, loadID uuid.UUID, role domain.LoadRole) (domain.Load, error) {
	if !role.Valid() {
		return domain.Load{}, fmt.Errorf("%w: unknown load role %q", domain.ErrValidation, role)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Load{}, fmt.Errorf("service.TripService.AttachLoad: %w", err)
	}
	if trip.Status == domain.TripSettled || trip.Status == domain.TripCancelled {
		return domain.Load{}, fmt.Errorf("%w: cannot attach loads to a %s trip", domain.ErrValidation, trip.Status)
	}

	load, err := s.loads.AssignToTrip(ctx, loadID, tripID, role)
	if err != nil {
		return domain.Load{}, fmt.Errorf("service.TripService.AttachLoad: %w", err)
	}
	return load, nil
}

// DetachLoad removes a load from the trip.
func (s *TripService) DetachLoad(ctx context.Context, tripID, loadID uuid.UUID) error {
	load, err := s.loads.GetByID(ctx, loadID)
	if err != nil {
		return fmt.Errorf("service.TripService.DetachLoad: %w", err)
	}
	if load.TripID == nil || *load.TripID != tripID {
		return fmt.Errorf("service.TripService.DetachLoad: %w", domain.ErrNotFound)
	}

	if err := s.loads.Detach(ctx, loadID); err != nil {
		return fmt.Errorf("service.TripService.DetachLoad: %w", err)
	}
	return nil
}

// ReorderLoads rewrites the trip's route order. The ID set must exactly match
// the loads currently attached — a stale drag-and-drop submission that
// references detached or foreign loads is rejected whole.
func (s *TripService) ReorderLoads(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	current, err := s.loads.ListByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.ReorderLoads: %w", err)
	}
	if len(orderedIDs) != len(current) {
		return fmt.Errorf("%w: reorder must include all %d attached loads", domain.ErrValidation, len(current))
	}
	attached := make(map[uuid.UUID]bool, len(current))
	for _, l := range current {
		attached[l.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !attached[id] {
			return fmt.Errorf("%w: load %s is not attached to this trip", domain.ErrValidation, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: load %s appears twice", domain.ErrValidation, id)
		}
		seen[id] = true
	}

	if err := s.loads.Reorder(ctx, tripID, orderedIDs); err != nil {
		return fmt.Errorf("service.TripService.ReorderLoads: %w", err)
	}
	return nil
}

// Preview runs the settlement aggregator speculatively for live display.
// Nothing is persisted; the result is marked provisional unless the trip has
// already been settled.
func (s *TripService) Preview(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	trip, loads, expenses, err := s.fetchTripFinancials(ctx, id, "Preview")
	if err != nil {
		return finance.Settlement{}, err
	}

	settlement, err := s.compute(trip, loads, expenses)
	if err != nil {
		return finance.Settlement{}, err
	}
	settlement.Provisional = trip.Status != domain.TripSettled
	return settlement, nil
}

// Settle runs the aggregator and persists the rollups, moving the trip to
// settled. Only a completed trip can settle.
func (s *TripService) Settle(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	trip, loads, expenses, err := s.fetchTripFinancials(ctx, id, "Settle")
	if err != nil {
		return finance.Settlement{}, err
	}
	if !trip.Status.CanTransitionTo(domain.TripSettled) {
		return finance.Settlement{}, fmt.Errorf("%w: cannot settle a %s trip", domain.ErrValidation, trip.Status)
	}

	return s.settleAndPersist(ctx, trip, loads, expenses, "Settle")
}

// Recalculate re-runs the aggregator on an already-settled trip and
// re-persists the rollups. This is the only write path that may touch a
// settled trip's frozen outputs.
func (s *TripService) Recalculate(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	trip, loads, expenses, err := s.fetchTripFinancials(ctx, id, "Recalculate")
	if err != nil {
		return finance.Settlement{}, err
	}
	if trip.Status != domain.TripSettled {
		return finance.Settlement{}, fmt.Errorf("%w: only settled trips can be recalculated", domain.ErrValidation)
	}

	return s.settleAndPersist(ctx, trip, loads, expenses, "Recalculate")
}

// settleAndPersist computes the settlement and writes the rollups plus the
// settled status in one repo call.
func (s *TripService) settleAndPersist(ctx context.Context, trip domain.Trip, loads []domain.Load, expenses []domain.Expense, op string) (finance.Settlement, error) {
	settlement, err := s.compute(trip, loads, expenses)
	if err != nil {
		return finance.Settlement{}, err
	}

	rollups := repo.TripRollups{
		RevenueTotal:       settlement.RevenueTotal,
		DriverPayTotal:     settlement.DriverPayTotal,
		FuelTotal:          settlement.FuelTotal,
		TollsTotal:         settlement.TollsTotal,
		OtherExpensesTotal: settlement.OtherExpensesTotal,
	}
	if err := s.trips.UpdateRollups(ctx, trip.ID, rollups, domain.TripSettled); err != nil {
		return finance.Settlement{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}

	settlement.Provisional = false
	return settlement, nil
}

// compute runs the full engine pipeline: load revenue → driver pay →
// settlement rollup.
func (s *TripService) compute(trip domain.Trip, loads []domain.Load, expenses []domain.Expense) (finance.Settlement, error) {
	facts := finance.TripFacts{
		ActualMiles:  trip.ActualMiles,
		TotalMiles:   trip.TotalMiles,
		TotalCuft:    finance.TotalCuft(loads),
		RevenueTotal: finance.RevenueTotal(loads),
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
	}

	pay, err := finance.ComputeDriverPay(trip.Pay, facts)
	if err != nil {
		return finance.Settlement{}, err
	}

	return finance.ComputeSettlement(loads, expenses, pay), nil
}

// fetchTripFinancials loads everything a settlement computation reads.
func (s *TripService) fetchTripFinancials(ctx context.Context, id uuid.UUID, op string) (domain.Trip, []domain.Load, []domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, nil, nil, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	loads, err := s.loads.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, nil, nil, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	expenses, err := s.expenses.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, nil, nil, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return trip, loads, expenses, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Pay mode must be one of the five known modes.
//   - EndDate, if set, must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !trip.Pay.Mode.Valid() {
		return fmt.Errorf("%w: unknown pay mode %q", domain.ErrValidation, trip.Pay.Mode)
	}
	if trip.EndDate != nil && trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
