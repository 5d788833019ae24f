package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Outlet errors
	ErrOutletNotFound = errors.New("outlet not found")

	// Availability errors
	ErrPastDate           = errors.New("requested date is in the past")
	ErrInvalidPartySize   = errors.New("party size must be positive")
	ErrInvalidTimeFormat  = errors.New("malformed time string")
	ErrOutletClosed       = errors.New("outlet closed on requested date")
	ErrTimeslotFull       = errors.New("timeslot full")
	ErrEventConflict      = errors.New("slot blocked by ticketed event")
	ErrPrivateRoomBlocked = errors.New("private room inside block-time window")

	// Write-path errors
	ErrBookingConflict         = errors.New("booking conflict at commit")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
