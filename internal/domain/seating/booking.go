package seating

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NOSHOW"
	StatusLeft      BookingStatus = "LEFT"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusConfirmed, StatusCancelled, StatusNoShow, StatusLeft:
		return true
	default:
		return false
	}
}

// Blocks reports whether a booking in this status still occupies its
// table. Cancelled, no-show, and departed bookings release the table.
func (s BookingStatus) Blocks() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusLeft:
		return false
	default:
		return true
	}
}

// CanTransitionTo enforces BOOKED -> (CONFIRMED | CANCELLED | NOSHOW | LEFT).
// Terminal statuses accept no further transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusBooked:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow || next == StatusLeft
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusNoShow || next == StatusLeft
	default:
		return false
	}
}

// Booking is the only record that makes a table occupied during an
// interval. Rows for one group booking share an invoice id.
type Booking struct {
	ID        uuid.UUID
	TableID   uuid.UUID
	InvoiceID uuid.UUID
	Start     time.Time
	End       time.Time
	PartySize int
	Status    BookingStatus
}

func (b Booking) Blocks() bool {
	return b.Status.Blocks()
}

// Overlaps reports whether the booking's half-open interval shares any
// instant with [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}
