// Package domain contains the core data types for the MoveBoss trip
// reconciliation API. This package has no dependencies beyond uuid and is
// imported by every other internal package (finance, dispatch, repo,
// service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripPlanned   TripStatus = "planned"
	TripActive    TripStatus = "active"
	TripEnRoute   TripStatus = "en_route"
	TripCompleted TripStatus = "completed"
	TripSettled   TripStatus = "settled"
	TripCancelled TripStatus = "cancelled"
)

// Valid reports whether s is one of the known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanned, TripActive, TripEnRoute, TripCompleted, TripSettled, TripCancelled:
		return true
	}
	return false
}

// tripTransitions lists the legal forward transitions for each status.
// Cancelled is terminal; any non-terminal status may move to cancelled.
var tripTransitions = map[TripStatus][]TripStatus{
	TripPlanned:   {TripActive, TripCancelled},
	TripActive:    {TripEnRoute, TripCancelled},
	TripEnRoute:   {TripCompleted, TripCancelled},
	TripCompleted: {TripSettled, TripCancelled},
	TripSettled:   {},
	TripCancelled: {},
}

// CanTransitionTo reports whether a trip in status s may move to next.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, t := range tripTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// PayMode selects how a trip's driver is paid.
type PayMode string

const (
	PayPerMile          PayMode = "per_mile"
	PayPerCuft          PayMode = "per_cuft"
	PayPerMileAndCuft   PayMode = "per_mile_and_cuft"
	PayPercentOfRevenue PayMode = "percent_of_revenue"
	PayFlatDailyRate    PayMode = "flat_daily_rate"
)

// Valid reports whether m is one of the five known pay modes.
func (m PayMode) Valid() bool {
	switch m {
	case PayPerMile, PayPerCuft, PayPerMileAndCuft, PayPercentOfRevenue, PayFlatDailyRate:
		return true
	}
	return false
}

// PayConfig holds the driver-pay mode and its rate parameters.
// Rates are nullable: a trip may be created before rates are negotiated,
// and the pay calculator treats a missing rate as zero.
type PayConfig struct {
	Mode             PayMode  `json:"mode"`
	RatePerMile      *float64 `json:"rate_per_mile,omitempty"`
	RatePerCuft      *float64 `json:"rate_per_cuft,omitempty"`
	PercentOfRevenue *float64 `json:"percent_of_revenue,omitempty"`
	FlatDailyRate    *float64 `json:"flat_daily_rate,omitempty"`
}

// Trip is a unit of dispatch work assigned to one driver over a date range.
// A trip is the top-level aggregate; loads and expenses belong to a trip.
//
// The five *Total fields are derived rollups. They are recomputed by the
// settlement aggregator and must never be edited independently.
type Trip struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Status     TripStatus `json:"status"`
	DriverName string     `json:"driver_name,omitempty"`
	Pay        PayConfig  `json:"pay"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"` // nil while the trip is open-ended

	// TotalMiles is the dispatcher's route estimate; ActualMiles is the
	// odometer figure recorded after the run. Pay calculations prefer
	// ActualMiles and flag the result as provisional when only the
	// estimate was available.
	TotalMiles  *float64 `json:"total_miles,omitempty"`
	ActualMiles *float64 `json:"actual_miles,omitempty"`

	RevenueTotal       float64 `json:"revenue_total"`
	DriverPayTotal     float64 `json:"driver_pay_total"`
	FuelTotal          float64 `json:"fuel_total"`
	TollsTotal         float64 `json:"tolls_total"`
	OtherExpensesTotal float64 `json:"other_expenses_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profit returns profit from the stored rollups. Only meaningful after the
// settlement aggregator has populated the totals.
func (t Trip) Profit() float64 {
	return t.RevenueTotal - (t.DriverPayTotal + t.FuelTotal + t.TollsTotal + t.OtherExpensesTotal)
}
