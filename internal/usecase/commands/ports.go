package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/event"
	"tablebook/internal/domain/outlet"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/seating"
	"tablebook/internal/infra/db"

	"github.com/google/uuid"
)

// EngineReads is the command-side view of persistence. Declared here so
// the write path states exactly what it consumes, even though infra
// serves the read side through the same store.
type EngineReads interface {
	OutletConfig(ctx context.Context, outletID uuid.UUID) (*outlet.Config, error)
	WeeklySchedule(ctx context.Context, outletID uuid.UUID) ([]schedule.WeeklyEntry, error)
	Overrides(ctx context.Context, outletID uuid.UUID, date time.Time) ([]schedule.Override, error)
	Events(ctx context.Context, outletID uuid.UUID, date time.Time) ([]event.TicketedEvent, error)
	SeatingSnapshot(ctx context.Context, outletID uuid.UUID, window schedule.Interval) (*seating.Snapshot, error)
}

// BookingWriter commits an assignment. Implementations must re-check
// table conflicts inside the transaction so a racing writer loses with
// a conflict error instead of double-booking.
type BookingWriter interface {
	InsertAssignment(ctx context.Context, tx db.DBTX, a *seating.Assignment, invoiceID uuid.UUID, partySize int, start, end time.Time) ([]uuid.UUID, error)
	InvoiceState(ctx context.Context, tx db.DBTX, invoiceID uuid.UUID) (*InvoiceState, error)
	UpdateInvoiceStatus(ctx context.Context, tx db.DBTX, invoiceID uuid.UUID, next seating.BookingStatus) error
}

// InvoiceState is the locked view of an invoice's bookings used to
// validate a status transition.
type InvoiceState struct {
	OutletID uuid.UUID
	Status   seating.BookingStatus
	StartsAt time.Time
}

// CacheInvalidator drops cached availability for an outlet-day after a
// successful write.
type CacheInvalidator interface {
	InvalidateDay(ctx context.Context, outletID uuid.UUID, date string)
}
