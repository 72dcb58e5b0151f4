package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, illegal status transition).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidConfig is returned by the finance calculators when the stored
// configuration itself is broken (e.g. an unknown pay mode). Unlike a missing
// fact — which degrades to a zero contribution — a broken configuration is a
// data-entry bug upstream and must be reported, not defaulted.
// Handlers should map this to HTTP 422.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrCODConfirmationRequired is returned when a delivery is submitted for a
// load that requires cash-on-delivery collection but the request did not
// carry the explicit confirmation flag.
// Handlers should map this to HTTP 409.
var ErrCODConfirmationRequired = errors.New("cod confirmation required")
