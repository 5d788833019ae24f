package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tablebook/internal/domain/event"
	"tablebook/internal/domain/outlet"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/seating"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/metrics"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type ReserveParams struct {
	OutletID      uuid.UUID
	Date          string
	Time          string
	PartySize     int
	PrivateRoomID *uuid.UUID
	InvoiceID     *uuid.UUID
}

type AssignmentView struct {
	OutletID   uuid.UUID   `json:"outlet_id"`
	InvoiceID  uuid.UUID   `json:"invoice_id"`
	BookingIDs []uuid.UUID `json:"booking_ids"`
	TableIDs   []uuid.UUID `json:"table_ids"`
	Kind       string      `json:"kind"`
	StartsAt   time.Time   `json:"starts_at"`
	EndsAt     time.Time   `json:"ends_at"`
}

type UpdateStatusParams struct {
	InvoiceID uuid.UUID
	Status    string
}

type ReservationCommands interface {
	Reserve(ctx context.Context, p ReserveParams) (*AssignmentView, error)
	UpdateStatus(ctx context.Context, p UpdateStatusParams) error
}

type reservationCommandsImpl struct {
	reads     EngineReads
	writer    BookingWriter
	uow       shared.UnitOfWork
	cache     CacheInvalidator
	allocator *seating.Allocator
	resolver  *schedule.Resolver
	clock     *clock.OutletClock
	logger    *slog.Logger
}

func NewReservationCommands(
	reads EngineReads,
	writer BookingWriter,
	uow shared.UnitOfWork,
	cache CacheInvalidator,
	baseClock clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		reads:     reads,
		writer:    writer,
		uow:       uow,
		cache:     cache,
		allocator: seating.NewAllocator(),
		resolver:  schedule.NewResolver(logger),
		clock:     clock.NewOutletClock(baseClock),
		logger:    logger,
	}
}

// Reserve runs the full commit path: validate the request, re-resolve
// trading hours and the event overlay for the requested instant, pick
// tables through the allocator, then persist inside one transaction
// with a conflict re-check. A lost write race surfaces as a full
// timeslot so callers retry the same way they would for plain
// contention.
func (c *reservationCommandsImpl) Reserve(ctx context.Context, p ReserveParams) (*AssignmentView, error) {
	if p.PartySize <= 0 {
		return nil, errs.ErrInvalidPartySize
	}

	cfg, err := c.reads.OutletConfig(ctx, p.OutletID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOutletNotFound)
		}
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrOutletNotFound)
	}

	start, err := parseLocalInstant(p.Date, p.Time, loc)
	if err != nil {
		return nil, err
	}
	now := c.clock.NowIn(loc)
	if start.Before(now) {
		return nil, errs.ErrPastDate
	}
	end := start.Add(cfg.Turnover)
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	if err := c.checkTradingHours(ctx, cfg, loc, date, start); err != nil {
		return nil, err
	}

	events, err := c.reads.Events(ctx, p.OutletID, date)
	if err != nil {
		return nil, err
	}
	if err := checkEventConflict(events, start, end, loc); err != nil {
		return nil, err
	}

	snap, err := c.reads.SeatingSnapshot(ctx, p.OutletID, schedule.Interval{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	snap.EventBlocked = event.BlockedTables(events, start, end, loc)
	snap.PaxSpacing = cfg.PaxSpacing

	if p.PrivateRoomID != nil {
		for _, sec := range snap.Sections {
			if sec.ID == *p.PrivateRoomID && sec.PrivateRoom && start.Before(now.Add(sec.BlockTime)) {
				return nil, errs.ErrPrivateRoomBlocked
			}
		}
	}

	assignment, err := c.allocate(snap, p, start, end, now)
	if err != nil {
		metrics.IncAllocationOutcome(metrics.OutcomeRejected)
		return nil, mapSeatingErr(err)
	}
	metrics.IncAllocationOutcome(string(assignment.Kind))

	invoiceID := uuid.New()
	if p.InvoiceID != nil {
		invoiceID = *p.InvoiceID
	}

	var bookingIDs []uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		ids, werr := c.writer.InsertAssignment(ctx, tx, assignment, invoiceID, p.PartySize, start, end)
		if werr != nil {
			return werr
		}
		bookingIDs = ids
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			metrics.IncWriteConflict()
			c.logger.Warn("booking write lost a race",
				"outlet_id", p.OutletID, "invoice_id", invoiceID, "starts_at", start)
			return nil, errs.Mark(err, errs.ErrTimeslotFull)
		}
		return nil, err
	}

	if c.cache != nil {
		c.cache.InvalidateDay(ctx, p.OutletID, p.Date)
	}

	return &AssignmentView{
		OutletID:   p.OutletID,
		InvoiceID:  invoiceID,
		BookingIDs: bookingIDs,
		TableIDs:   assignment.TableIDs(),
		Kind:       string(assignment.Kind),
		StartsAt:   start,
		EndsAt:     end,
	}, nil
}

// UpdateStatus moves every booking row of an invoice through the
// status machine. Releasing statuses free the tables, so the cached
// availability for that outlet-day is dropped after commit.
func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, p UpdateStatusParams) error {
	next := seating.BookingStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
	if !next.IsValid() {
		return errs.Mark(errs.Newf("unknown booking status %q", p.Status), errs.ErrDomainValidation)
	}

	var state *InvoiceState
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		st, werr := c.writer.InvoiceState(ctx, tx, p.InvoiceID)
		if werr != nil {
			if infra.IsKind(werr, infra.KindNotFound) {
				return errs.Mark(werr, errs.ErrBookingNotFound)
			}
			return werr
		}
		if !st.Status.CanTransitionTo(next) {
			return errs.Mark(errs.Newf("%s -> %s", st.Status, next), errs.ErrInvalidStatusTransition)
		}
		state = st
		return c.writer.UpdateInvoiceStatus(ctx, tx, p.InvoiceID, next)
	})
	if err != nil {
		return err
	}

	if c.cache != nil {
		cfg, cerr := c.reads.OutletConfig(ctx, state.OutletID)
		if cerr == nil {
			if loc, lerr := cfg.Location(); lerr == nil {
				c.cache.InvalidateDay(ctx, state.OutletID, state.StartsAt.In(loc).Format(dateLayout))
			}
		}
	}
	return nil
}

func (c *reservationCommandsImpl) allocate(snap *seating.Snapshot, p ReserveParams, start, end, now time.Time) (*seating.Assignment, error) {
	began := time.Now()
	defer func() { metrics.ObserveAllocatorDuration(time.Since(began)) }()

	req := seating.Request{
		PartySize: p.PartySize,
		Start:     start,
		End:       end,
		Now:       now,
	}
	if p.PrivateRoomID != nil {
		return c.allocator.AllocateRoom(req, snap, *p.PrivateRoomID)
	}
	return c.allocator.Allocate(req, snap)
}

func (c *reservationCommandsImpl) checkTradingHours(ctx context.Context, cfg *outlet.Config, loc *time.Location, date, start time.Time) error {
	weekly, err := c.reads.WeeklySchedule(ctx, cfg.ID)
	if err != nil {
		return err
	}
	overrides, err := c.reads.Overrides(ctx, cfg.ID, date)
	if err != nil {
		return err
	}
	day := c.resolver.ResolveDay(date, loc, weekly, overrides)
	for _, p := range day.AllPeriods() {
		if !start.Before(p.Start) && start.Before(p.End) {
			return nil
		}
	}
	return errs.ErrOutletClosed
}

func checkEventConflict(events []event.TicketedEvent, start, end time.Time, loc *time.Location) error {
	for _, ev := range events {
		if !ev.BlockTables || !ev.ActiveOn(start, loc) {
			continue
		}
		window, ok := ev.WindowOn(start, loc)
		if !ok {
			continue
		}
		if start.Before(window.End) && window.Start.Before(end) {
			return errs.ErrEventConflict
		}
	}
	return nil
}

func mapSeatingErr(err error) error {
	switch {
	case errors.Is(err, seating.ErrInvalidPartySize):
		return errs.Mark(err, errs.ErrInvalidPartySize)
	case errors.Is(err, seating.ErrInvalidInterval):
		return errs.Mark(err, errs.ErrDomainValidation)
	case errors.Is(err, seating.ErrRoomNotFound):
		return errs.Mark(err, errs.ErrDomainValidation)
	case errors.Is(err, seating.ErrTimeslotFull):
		return errs.Mark(err, errs.ErrTimeslotFull)
	default:
		return err
	}
}

func parseLocalInstant(date, clockTime string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clockTime, loc)
	if err != nil {
		return time.Time{}, errs.Mark(err, errs.ErrInvalidTimeFormat)
	}
	return t, nil
}
