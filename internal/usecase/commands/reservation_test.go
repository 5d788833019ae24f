//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tablebook/internal/domain/event"
	"tablebook/internal/domain/outlet"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/seating"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeEngineReads struct {
	cfg    *outlet.Config
	weekly []schedule.WeeklyEntry
	events []event.TicketedEvent
	snap   *seating.Snapshot
}

func (f *fakeEngineReads) OutletConfig(_ context.Context, id uuid.UUID) (*outlet.Config, error) {
	if f.cfg == nil || f.cfg.ID != id {
		return nil, infra.WrapRepoErr("outlet not found", nil, infra.KindNotFound)
	}
	return f.cfg, nil
}

func (f *fakeEngineReads) WeeklySchedule(_ context.Context, _ uuid.UUID) ([]schedule.WeeklyEntry, error) {
	return f.weekly, nil
}

func (f *fakeEngineReads) Overrides(_ context.Context, _ uuid.UUID, _ time.Time) ([]schedule.Override, error) {
	return nil, nil
}

func (f *fakeEngineReads) Events(_ context.Context, _ uuid.UUID, _ time.Time) ([]event.TicketedEvent, error) {
	return f.events, nil
}

func (f *fakeEngineReads) SeatingSnapshot(_ context.Context, _ uuid.UUID, _ schedule.Interval) (*seating.Snapshot, error) {
	return f.snap, nil
}

type fakeUow struct{}

func (fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeWriter struct {
	err     error
	calls   int
	got     *seating.Assignment
	state   *commands.InvoiceState
	updated []seating.BookingStatus
}

func (f *fakeWriter) InsertAssignment(_ context.Context, _ db.DBTX, a *seating.Assignment, _ uuid.UUID, _ int, _, _ time.Time) ([]uuid.UUID, error) {
	f.calls++
	f.got = a
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]uuid.UUID, len(a.Tables))
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids, nil
}

func (f *fakeWriter) InvoiceState(_ context.Context, _ db.DBTX, _ uuid.UUID) (*commands.InvoiceState, error) {
	if f.state == nil {
		return nil, infra.WrapRepoErr("invoice has no bookings", nil, infra.KindNotFound)
	}
	return f.state, nil
}

func (f *fakeWriter) UpdateInvoiceStatus(_ context.Context, _ db.DBTX, _ uuid.UUID, next seating.BookingStatus) error {
	f.updated = append(f.updated, next)
	return nil
}

type fakeInvalidator struct {
	dates []string
}

func (f *fakeInvalidator) InvalidateDay(_ context.Context, _ uuid.UUID, date string) {
	f.dates = append(f.dates, date)
}

type ReservationCommandsTestSuite struct {
	suite.Suite
	loc      *time.Location
	outletID uuid.UUID
	tableID  uuid.UUID
	reads    *fakeEngineReads
	writer   *fakeWriter
	cache    *fakeInvalidator
	commands commands.ReservationCommands
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	var err error
	s.loc, err = time.LoadLocation("Asia/Singapore")
	require.NoError(s.T(), err)

	s.outletID = uuid.New()
	s.tableID = uuid.New()
	s.reads = &fakeEngineReads{
		cfg: &outlet.Config{
			ID:           s.outletID,
			Name:         "Harbour Front",
			TimeZone:     "Asia/Singapore",
			SlotInterval: 30 * time.Minute,
			BlockTime:    time.Hour,
			Turnover:     2 * time.Hour,
		},
		weekly: []schedule.WeeklyEntry{{
			OutletID:    s.outletID,
			SectionID:   uuid.New(),
			Weekday:     time.Monday,
			OpeningTime: "18:00",
			ClosingTime: "21:00",
			Active:      true,
		}},
		snap: builder.NewSnapshotBuilder().WithTable(s.tableID, 4).Build(),
	}
	s.writer = &fakeWriter{}
	s.cache = &fakeInvalidator{}

	mockClock := clock.NewMockClock(time.Date(2026, 9, 10, 12, 0, 0, 0, s.loc))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.commands = commands.NewReservationCommands(s.reads, s.writer, fakeUow{}, s.cache, mockClock, logger)
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) baseParams() commands.ReserveParams {
	return commands.ReserveParams{
		OutletID:  s.outletID,
		Date:      "2026-09-14",
		Time:      "19:00",
		PartySize: 2,
	}
}

func (s *ReservationCommandsTestSuite) TestReserve() {
	view, err := s.commands.Reserve(context.Background(), s.baseParams())
	require.NoError(s.T(), err)

	s.Equal("single_table", view.Kind)
	s.Equal([]uuid.UUID{s.tableID}, view.TableIDs)
	s.Len(view.BookingIDs, 1)
	s.NotEqual(uuid.Nil, view.InvoiceID)

	wantStart := time.Date(2026, 9, 14, 19, 0, 0, 0, s.loc)
	s.True(view.StartsAt.Equal(wantStart))
	s.True(view.EndsAt.Equal(wantStart.Add(2 * time.Hour)))

	s.Equal(1, s.writer.calls)
	s.Equal([]string{"2026-09-14"}, s.cache.dates, "outlet-day cache dropped after the write")
}

func (s *ReservationCommandsTestSuite) TestReserveKeepsCallerInvoice() {
	invoiceID := uuid.New()
	p := s.baseParams()
	p.InvoiceID = &invoiceID

	view, err := s.commands.Reserve(context.Background(), p)
	require.NoError(s.T(), err)

	s.Equal(invoiceID, view.InvoiceID)
}

func (s *ReservationCommandsTestSuite) TestReserveValidation() {
	s.Run("unknown outlet", func() {
		p := s.baseParams()
		p.OutletID = uuid.New()
		_, err := s.commands.Reserve(context.Background(), p)
		s.ErrorIs(err, errs.ErrOutletNotFound)
	})

	s.Run("past instant", func() {
		p := s.baseParams()
		p.Date = "2026-09-09"
		_, err := s.commands.Reserve(context.Background(), p)
		s.ErrorIs(err, errs.ErrPastDate)
	})

	s.Run("malformed time", func() {
		p := s.baseParams()
		p.Time = "7pm"
		_, err := s.commands.Reserve(context.Background(), p)
		s.ErrorIs(err, errs.ErrInvalidTimeFormat)
	})

	s.Run("outside trading hours", func() {
		p := s.baseParams()
		p.Time = "21:30"
		_, err := s.commands.Reserve(context.Background(), p)
		s.ErrorIs(err, errs.ErrOutletClosed)
	})

	s.Zero(s.writer.calls)
}

func (s *ReservationCommandsTestSuite) TestReserveEventConflict() {
	s.reads.events = []event.TicketedEvent{{
		ID:          uuid.New(),
		OutletID:    s.outletID,
		StartDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, s.loc),
		EndDate:     time.Date(2026, 9, 14, 0, 0, 0, 0, s.loc),
		OpeningTime: "18:00",
		ClosingTime: "22:00",
		BlockTables: true,
	}}

	_, err := s.commands.Reserve(context.Background(), s.baseParams())

	s.ErrorIs(err, errs.ErrEventConflict)
	s.Zero(s.writer.calls)
}

func (s *ReservationCommandsTestSuite) TestReserveTimeslotFull() {
	s.reads.snap = builder.NewSnapshotBuilder().
		WithTable(s.tableID, 4).
		WithBooking(s.tableID,
			time.Date(2026, 9, 14, 19, 0, 0, 0, s.loc),
			time.Date(2026, 9, 14, 21, 0, 0, 0, s.loc),
			seating.StatusBooked, 2).
		Build()

	_, err := s.commands.Reserve(context.Background(), s.baseParams())

	s.ErrorIs(err, errs.ErrTimeslotFull)
	s.Zero(s.writer.calls)
	s.Empty(s.cache.dates)
}

func (s *ReservationCommandsTestSuite) TestReserveLostWriteRace() {
	s.writer.err = infra.WrapRepoErr("table already booked for interval", nil, infra.KindConflict)

	_, err := s.commands.Reserve(context.Background(), s.baseParams())

	s.ErrorIs(err, errs.ErrTimeslotFull, "a lost race looks like plain contention to the caller")
	s.Equal(1, s.writer.calls)
	s.Empty(s.cache.dates, "no cache invalidation for a failed write")
}

func (s *ReservationCommandsTestSuite) TestReservePrivateRoom() {
	roomID := uuid.New()
	roomTable := uuid.New()

	s.Run("books the room as a unit", func() {
		s.reads.snap = builder.NewSnapshotBuilder().
			WithSectionTable(roomTable, roomID, 8, true).
			WithSection(seating.Section{
				ID: roomID, OutletID: s.outletID, Name: "Garden Room",
				PrivateRoom: true, BlockTime: time.Hour, Capacity: 8,
			}).
			Build()

		p := s.baseParams()
		p.PrivateRoomID = &roomID
		view, err := s.commands.Reserve(context.Background(), p)
		require.NoError(s.T(), err)

		s.Equal("private_room", view.Kind)
		s.Equal([]uuid.UUID{roomTable}, view.TableIDs)
	})

	s.Run("rejects inside the room's block window", func() {
		s.reads.snap = builder.NewSnapshotBuilder().
			WithSectionTable(roomTable, roomID, 8, true).
			WithSection(seating.Section{
				ID: roomID, OutletID: s.outletID, Name: "Garden Room",
				PrivateRoom: true, BlockTime: 240 * time.Hour, Capacity: 8,
			}).
			Build()

		p := s.baseParams()
		p.PrivateRoomID = &roomID
		_, err := s.commands.Reserve(context.Background(), p)

		s.ErrorIs(err, errs.ErrPrivateRoomBlocked)
	})
}

func (s *ReservationCommandsTestSuite) TestUpdateStatus() {
	invoiceID := uuid.New()
	startsAt := time.Date(2026, 9, 14, 19, 0, 0, 0, s.loc)

	s.Run("confirm booked invoice", func() {
		s.writer.state = &commands.InvoiceState{
			OutletID: s.outletID,
			Status:   seating.StatusBooked,
			StartsAt: startsAt,
		}

		err := s.commands.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			InvoiceID: invoiceID,
			Status:    "confirmed",
		})

		s.NoError(err)
		s.Equal([]seating.BookingStatus{seating.StatusConfirmed}, s.writer.updated)
		s.Equal([]string{"2026-09-14"}, s.cache.dates, "releasing or pinning tables changes the cached day")
	})

	s.Run("unknown status string", func() {
		err := s.commands.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			InvoiceID: invoiceID,
			Status:    "SEATED",
		})

		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("unknown invoice", func() {
		s.writer.state = nil

		err := s.commands.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			InvoiceID: uuid.New(),
			Status:    "CANCELLED",
		})

		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("terminal status rejects transition", func() {
		s.writer.state = &commands.InvoiceState{
			OutletID: s.outletID,
			Status:   seating.StatusCancelled,
			StartsAt: startsAt,
		}
		before := len(s.writer.updated)

		err := s.commands.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			InvoiceID: invoiceID,
			Status:    "CONFIRMED",
		})

		s.ErrorIs(err, errs.ErrInvalidStatusTransition)
		s.Len(s.writer.updated, before)
	})
}
