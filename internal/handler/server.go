// Package handler implements the HTTP handlers for the MoveBoss API.
// Handlers decode JSON, call a service interface, and map sentinel errors to
// HTTP statuses. Methods are split into domain-specific files (trip.go,
// load.go, etc.) but all share the same Server struct.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/finance"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/service"
	"github.com/yonigrin7234/moveboss-pro-sub007/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (service.TripDetail, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Transition(ctx context.Context, id uuid.UUID, next domain.TripStatus) (domain.Trip, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	AttachLoad(ctx context.Context, tripID, loadID uuid.UUID, role domain.LoadRole) (domain.Load, error)
	DetachLoad(ctx context.Context, tripID, loadID uuid.UUID) error
	ReorderLoads(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
	Preview(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
	Settle(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
	Recalculate(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
}

// LoadServicer defines the business operations the load handlers depend on.
type LoadServicer interface {
	Create(ctx context.Context, load domain.Load) (domain.Load, error)
	GetByID(ctx context.Context, id uuid.UUID) (service.LoadDetail, error)
	List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]service.LoadDetail, int64, error)
	Update(ctx context.Context, load domain.Load) (domain.Load, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkDelivered(ctx context.Context, id uuid.UUID, codConfirmed bool) (service.LoadDetail, error)
}

// ExpenseServicer defines the business operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// DispatchServicer defines the dispatch worklist operations.
type DispatchServicer interface {
	Worklist(ctx context.Context) ([]service.WorklistEntry, error)
	UrgencyCounts(ctx context.Context) (map[string]int, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	loads    LoadServicer
	expenses ExpenseServicer
	dispatch DispatchServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, loads LoadServicer, expenses ExpenseServicer, dispatch DispatchServicer) *Server {
	return &Server{trips: trips, loads: loads, expenses: expenses, dispatch: dispatch}
}

// Routes builds the chi route tree for the API. Middleware is the caller's
// business; this router only knows about paths.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/transition", s.TransitionTrip)
			r.Post("/cancel", s.CancelTrip)

			r.Post("/loads", s.AttachLoad)
			r.Put("/loads/order", s.ReorderLoads)
			r.Delete("/loads/{loadID}", s.DetachLoad)

			r.Get("/settlement/preview", s.PreviewSettlement)
			r.Post("/settlement", s.SettleTrip)
			r.Post("/settlement/recalculate", s.RecalculateTrip)

			r.Post("/expenses", s.CreateExpense)
			r.Get("/expenses", s.ListExpenses)
			r.Delete("/expenses/{expenseID}", s.DeleteExpense)
		})
	})

	r.Route("/loads", func(r chi.Router) {
		r.Post("/", s.CreateLoad)
		r.Get("/", s.ListLoads)
		r.Route("/{loadID}", func(r chi.Router) {
			r.Get("/", s.GetLoad)
			r.Put("/", s.UpdateLoad)
			r.Delete("/", s.DeleteLoad)
			r.Post("/deliver", s.DeliverLoad)
		})
	})

	r.Get("/dispatch/worklist", s.GetWorklist)
	r.Get("/dispatch/urgency-counts", s.GetUrgencyCounts)

	return r
}
