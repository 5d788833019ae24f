package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/event"
	"tablebook/internal/domain/outlet"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/seating"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AvailabilityReadStore serves every row set the availability engine
// computes over. Durations are stored as whole minutes and widened
// here.
type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

const outletConfigQuery = `
SELECT id, name, time_zone, slot_interval_minutes, block_time_minutes,
       lead_time_minutes, turnover_minutes, pax_spacing
FROM outlets
WHERE id = $1`

func (s *AvailabilityReadStore) OutletConfig(ctx context.Context, outletID uuid.UUID) (*outlet.Config, error) {
	var (
		cfg                                     outlet.Config
		slotMin, blockMin, leadMin, turnoverMin int32
	)
	row := s.db.QueryRow(ctx, outletConfigQuery, outletID)
	if err := row.Scan(&cfg.ID, &cfg.Name, &cfg.TimeZone, &slotMin, &blockMin, &leadMin, &turnoverMin, &cfg.PaxSpacing); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("outlet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load outlet config", err)
	}
	cfg.SlotInterval = time.Duration(slotMin) * time.Minute
	cfg.BlockTime = time.Duration(blockMin) * time.Minute
	cfg.LeadTime = time.Duration(leadMin) * time.Minute
	cfg.Turnover = time.Duration(turnoverMin) * time.Minute
	return &cfg, nil
}

const weeklyScheduleQuery = `
SELECT outlet_id, section_id, weekday, opening_time, closing_time, active
FROM weekly_schedules
WHERE outlet_id = $1
ORDER BY section_id, weekday, opening_time`

func (s *AvailabilityReadStore) WeeklySchedule(ctx context.Context, outletID uuid.UUID) ([]schedule.WeeklyEntry, error) {
	rows, err := s.db.Query(ctx, weeklyScheduleQuery, outletID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load weekly schedule", err)
	}
	defer rows.Close()

	var entries []schedule.WeeklyEntry
	for rows.Next() {
		var (
			e       schedule.WeeklyEntry
			weekday int16
		)
		if err := rows.Scan(&e.OutletID, &e.SectionID, &weekday, &e.OpeningTime, &e.ClosingTime, &e.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekly schedule row", err)
		}
		e.Weekday = time.Weekday(weekday)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read weekly schedule rows", err)
	}
	return entries, nil
}

const overridesQuery = `
SELECT outlet_id, section_id, weekday, opening_time, closing_time,
       effective_from, effective_to, open
FROM schedule_overrides
WHERE outlet_id = $1
  AND effective_from <= $2::date
  AND effective_to >= $2::date`

func (s *AvailabilityReadStore) Overrides(ctx context.Context, outletID uuid.UUID, date time.Time) ([]schedule.Override, error) {
	rows, err := s.db.Query(ctx, overridesQuery, outletID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load schedule overrides", err)
	}
	defer rows.Close()

	var overrides []schedule.Override
	for rows.Next() {
		var (
			o        schedule.Override
			weekday  int16
			from, to pgtype.Date
		)
		if err := rows.Scan(&o.OutletID, &o.SectionID, &weekday, &o.OpeningTime, &o.ClosingTime, &from, &to, &o.Open); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule override row", err)
		}
		o.Weekday = time.Weekday(weekday)
		o.EffectiveFrom = pgconv.DateFromPgtype(from)
		o.EffectiveTo = pgconv.DateFromPgtype(to)
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule override rows", err)
	}
	return overrides, nil
}

const eventsQuery = `
SELECT e.id, e.outlet_id, e.start_date, e.end_date, e.opening_time,
       e.closing_time, e.block_tables, e.max_tickets, e.tickets_sold,
       COALESCE(array_agg(t.table_id) FILTER (WHERE t.table_id IS NOT NULL), '{}') AS table_ids
FROM ticketed_events e
LEFT JOIN ticketed_event_tables t ON t.event_id = e.id
WHERE e.outlet_id = $1
  AND e.start_date <= $2::date
  AND e.end_date >= $2::date
GROUP BY e.id`

func (s *AvailabilityReadStore) Events(ctx context.Context, outletID uuid.UUID, date time.Time) ([]event.TicketedEvent, error) {
	rows, err := s.db.Query(ctx, eventsQuery, outletID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load ticketed events", err)
	}
	defer rows.Close()

	var events []event.TicketedEvent
	for rows.Next() {
		var (
			ev       event.TicketedEvent
			from, to pgtype.Date
		)
		if err := rows.Scan(&ev.ID, &ev.OutletID, &from, &to, &ev.OpeningTime, &ev.ClosingTime,
			&ev.BlockTables, &ev.MaxTickets, &ev.TicketsSold, &ev.TableIDs); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticketed event row", err)
		}
		ev.StartDate = pgconv.DateFromPgtype(from)
		ev.EndDate = pgconv.DateFromPgtype(to)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ticketed event rows", err)
	}
	return events, nil
}

const snapshotTablesQuery = `
SELECT t.id, t.outlet_id, t.section_id, t.seq, t.capacity, s.private_room
FROM outlet_tables t
JOIN sections s ON s.id = t.section_id
WHERE t.outlet_id = $1
ORDER BY t.seq`

const snapshotGroupsQuery = `
SELECT g.id, g.outlet_id, g.seq, g.min_pax, g.max_pax,
       COALESCE(array_agg(m.table_id ORDER BY m.table_id) FILTER (WHERE m.table_id IS NOT NULL), '{}') AS table_ids
FROM group_possibilities g
LEFT JOIN group_possibility_tables m ON m.group_id = g.id
WHERE g.outlet_id = $1
GROUP BY g.id
ORDER BY g.seq`

const snapshotSectionsQuery = `
SELECT id, outlet_id, name, private_room, block_time_minutes, capacity, override_capacity
FROM sections
WHERE outlet_id = $1`

const snapshotBookingsQuery = `
SELECT b.id, b.table_id, b.invoice_id, b.starts_at, b.ends_at, b.party_size, b.status
FROM table_bookings b
JOIN outlet_tables t ON t.id = b.table_id
WHERE t.outlet_id = $1
  AND b.starts_at < $3
  AND b.ends_at > $2`

// SeatingSnapshot loads everything one allocator pass needs: tables
// with their section flag, declared groups, sections, and bookings
// overlapping the window. Released statuses are still fetched; the
// domain decides which statuses block.
func (s *AvailabilityReadStore) SeatingSnapshot(ctx context.Context, outletID uuid.UUID, window schedule.Interval) (*seating.Snapshot, error) {
	snap := &seating.Snapshot{}

	rows, err := s.db.Query(ctx, snapshotTablesQuery, outletID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load tables", err)
	}
	for rows.Next() {
		var t seating.Table
		if err := rows.Scan(&t.ID, &t.OutletID, &t.SectionID, &t.Seq, &t.Capacity, &t.SectionReservable); err != nil {
			rows.Close()
			return nil, infra.WrapRepoErr("failed to scan table row", err)
		}
		snap.Tables = append(snap.Tables, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read table rows", err)
	}

	rows, err = s.db.Query(ctx, snapshotGroupsQuery, outletID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load group possibilities", err)
	}
	memberOf := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var g seating.GroupPossibility
		if err := rows.Scan(&g.ID, &g.OutletID, &g.Seq, &g.MinPax, &g.MaxPax, &g.TableIDs); err != nil {
			rows.Close()
			return nil, infra.WrapRepoErr("failed to scan group possibility row", err)
		}
		for _, tableID := range g.TableIDs {
			memberOf[tableID] = append(memberOf[tableID], g.ID)
		}
		snap.Groups = append(snap.Groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read group possibility rows", err)
	}
	for i := range snap.Tables {
		snap.Tables[i].GroupIDs = memberOf[snap.Tables[i].ID]
	}

	rows, err = s.db.Query(ctx, snapshotSectionsQuery, outletID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load sections", err)
	}
	for rows.Next() {
		var (
			sec      seating.Section
			blockMin int32
		)
		if err := rows.Scan(&sec.ID, &sec.OutletID, &sec.Name, &sec.PrivateRoom, &blockMin, &sec.Capacity, &sec.OverrideCapacity); err != nil {
			rows.Close()
			return nil, infra.WrapRepoErr("failed to scan section row", err)
		}
		sec.BlockTime = time.Duration(blockMin) * time.Minute
		snap.Sections = append(snap.Sections, sec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read section rows", err)
	}

	rows, err = s.db.Query(ctx, snapshotBookingsQuery, outletID, window.Start, window.End)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load bookings", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			b      seating.Booking
			status string
		)
		if err := rows.Scan(&b.ID, &b.TableID, &b.InvoiceID, &b.Start, &b.End, &b.PartySize, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		b.Status = seating.BookingStatus(status)
		snap.Bookings = append(snap.Bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return snap, nil
}
