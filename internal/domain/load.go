package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoadRole describes how a load sits inside its trip's route plan.
type LoadRole string

const (
	RolePrimary  LoadRole = "primary"
	RoleBackhaul LoadRole = "backhaul"
	RolePartial  LoadRole = "partial"
)

// Valid reports whether r is one of the known load roles.
func (r LoadRole) Valid() bool {
	switch r {
	case RolePrimary, RoleBackhaul, RolePartial:
		return true
	}
	return false
}

// TrustLevel controls whether the paying company can be invoiced later or
// must make the carrier whole at the point of delivery.
type TrustLevel string

const (
	TrustTrusted     TrustLevel = "trusted"
	TrustCODRequired TrustLevel = "cod_required"
)

// Valid reports whether t is one of the known trust levels.
func (t TrustLevel) Valid() bool {
	return t == TrustTrusted || t == TrustCODRequired
}

// AccessorialSet holds the five named accessorial charges used on every load,
// once for contracted amounts and once for on-site extras. All fields are
// nullable; a nil amount contributes zero.
type AccessorialSet struct {
	Shuttle   *float64 `json:"shuttle,omitempty"`
	Stairs    *float64 `json:"stairs,omitempty"`
	LongCarry *float64 `json:"long_carry,omitempty"`
	Bulky     *float64 `json:"bulky,omitempty"`
	Other     *float64 `json:"other,omitempty"`
}

// Load is a shipment with contract terms agreed up front and actual values
// captured at delivery time. A load belongs to at most one trip at a time;
// assigning it to a new trip detaches it from any prior one.
type Load struct {
	ID            uuid.UUID  `json:"id"`
	TripID        *uuid.UUID `json:"trip_id,omitempty"` // nil until dispatched
	SequenceIndex int        `json:"sequence_index"`
	Role          LoadRole   `json:"role"`

	CustomerName string     `json:"customer_name"`
	TrustLevel   TrustLevel `json:"trust_level"`

	// RFD (ready-for-delivery) scheduling fields. RFDDateTBD means the
	// customer has not committed to a date yet; it wins over any stale
	// RFDDate still on the record.
	RFDDate    *time.Time `json:"rfd_date,omitempty"`
	RFDDateTBD bool       `json:"rfd_date_tbd"`

	// Contract terms.
	ContractRatePerCuft  *float64       `json:"contract_rate_per_cuft,omitempty"`
	ContractAccessorials AccessorialSet `json:"contract_accessorials"`

	// Actuals captured at or after delivery.
	ActualCuftLoaded  *float64       `json:"actual_cuft_loaded,omitempty"`
	ExtraAccessorials AccessorialSet `json:"extra_accessorials"`

	StorageMoveInFee  *float64 `json:"storage_move_in_fee,omitempty"`
	StorageDailyFee   *float64 `json:"storage_daily_fee,omitempty"`
	StorageDaysBilled *float64 `json:"storage_days_billed,omitempty"`

	AmountCollectedOnDelivery *float64 `json:"amount_collected_on_delivery,omitempty"`
	// AmountPaidDirectlyToCompany is informational only: money the customer
	// wired to the company still has to be reconciled on the company side,
	// so it is never subtracted from what the carrier is owed.
	AmountPaidDirectlyToCompany *float64 `json:"amount_paid_directly_to_company,omitempty"`
	BalanceDueOnDelivery        *float64 `json:"balance_due_on_delivery,omitempty"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assigned reports whether the load is currently attached to a trip.
func (l Load) Assigned() bool {
	return l.TripID != nil
}
