package queries

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"tablebook/internal/domain/event"
	"tablebook/internal/domain/outlet"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/seating"
	"tablebook/internal/domain/timeslot"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout   = "2006-01-02"
	timeLayout   = "15:04"
	searchFanout = 8
)

// Read models (DTO for read side)
type SlotView struct {
	Time      string   `json:"time"`
	Enabled   bool     `json:"enabled"`
	Message   string   `json:"message,omitempty"`
	Discounts []string `json:"discounts,omitempty"`
}

type DayAvailabilityView struct {
	OutletID   uuid.UUID  `json:"outlet_id"`
	OutletName string     `json:"outlet_name"`
	Date       string     `json:"date"`
	PartySize  int        `json:"party_size"`
	Slots      []SlotView `json:"slots"`
}

// OfferingSpec names an ancillary offering (dining option, pre-order
// item) whose own lead time gates slots without removing them.
type OfferingSpec struct {
	Name     string
	LeadTime time.Duration
}

type ListSlotsParams struct {
	OutletID      uuid.UUID
	Date          string
	PartySize     int
	PreferredTime *string
	Offering      *OfferingSpec
	PrivateRoom   bool
}

type SearchParams struct {
	OutletIDs     []uuid.UUID
	Date          string
	PartySize     int
	PreferredTime *string
}

type AvailabilityQueries interface {
	ListSlots(ctx context.Context, p ListSlotsParams) (*DayAvailabilityView, error)
	Search(ctx context.Context, p SearchParams) ([]*DayAvailabilityView, error)
}

// AvailabilityReadStore is the read-side persistence seam: every method
// returns already-fetched rows the pure engine computes over.
type AvailabilityReadStore interface {
	OutletConfig(ctx context.Context, outletID uuid.UUID) (*outlet.Config, error)
	WeeklySchedule(ctx context.Context, outletID uuid.UUID) ([]schedule.WeeklyEntry, error)
	Overrides(ctx context.Context, outletID uuid.UUID, date time.Time) ([]schedule.Override, error)
	Events(ctx context.Context, outletID uuid.UUID, date time.Time) ([]event.TicketedEvent, error)
	SeatingSnapshot(ctx context.Context, outletID uuid.UUID, window schedule.Interval) (*seating.Snapshot, error)
}

// CouponLookup is the external discount collaborator. The engine only
// forwards surviving slots and merges returned tags; it never lets a
// coupon change availability.
type CouponLookup interface {
	DiscountTags(ctx context.Context, outletID uuid.UUID, date time.Time, partySize int, slotLabels []string) (map[string][]string, error)
}

type AvailabilityCache interface {
	GetDay(ctx context.Context, key string) (*DayAvailabilityView, bool)
	SetDay(ctx context.Context, key string, view *DayAvailabilityView)
}

type availabilityQueriesImpl struct {
	store    AvailabilityReadStore
	coupons  CouponLookup
	cache    AvailabilityCache
	resolver *schedule.Resolver
	clock    *clock.OutletClock
	logger   *slog.Logger
}

func NewAvailabilityQueries(
	store AvailabilityReadStore,
	coupons CouponLookup,
	cache AvailabilityCache,
	baseClock clock.Clock,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		store:    store,
		coupons:  coupons,
		cache:    cache,
		resolver: schedule.NewResolver(logger),
		clock:    clock.NewOutletClock(baseClock),
		logger:   logger,
	}
}

// ListSlots resolves trading hours, generates candidate slots in browse
// mode, applies the ticketed-event overlay, and keeps the list only
// when the outlet could ever hold the party. Browse mode runs the cheap
// capacity-exists check, not per-slot allocation: availability is
// always re-validated at commit time.
func (q *availabilityQueriesImpl) ListSlots(ctx context.Context, p ListSlotsParams) (*DayAvailabilityView, error) {
	if p.PartySize <= 0 {
		return nil, errs.ErrInvalidPartySize
	}

	cfg, err := q.store.OutletConfig(ctx, p.OutletID)
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

	date, err := time.ParseInLocation(dateLayout, p.Date, loc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeFormat)
	}
	now := q.clock.NowIn(loc)
	if date.Before(q.clock.StartOfDay(loc)) {
		return nil, errs.ErrPastDate
	}

	key := cacheKey(p)
	if q.cache != nil {
		if view, ok := q.cache.GetDay(ctx, key); ok {
			return view, nil
		}
	}

	view, err := q.resolveDay(ctx, cfg, loc, date, now, p)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		q.cache.SetDay(ctx, key, view)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) resolveDay(
	ctx context.Context,
	cfg *outlet.Config,
	loc *time.Location,
	date, now time.Time,
	p ListSlotsParams,
) (*DayAvailabilityView, error) {
	view := &DayAvailabilityView{
		OutletID:   cfg.ID,
		OutletName: cfg.Name,
		Date:       date.Format(dateLayout),
		PartySize:  p.PartySize,
	}

	weekly, err := q.store.WeeklySchedule(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}
	overrides, err := q.store.Overrides(ctx, cfg.ID, date)
	if err != nil {
		return nil, err
	}

	day := q.resolver.ResolveDay(date, loc, weekly, overrides)
	if day.IsClosed() {
		return view, nil
	}
	// Sections may trade over overlapping hours; the outlet-level grid
	// is their union.
	periods := schedule.Merge(day.AllPeriods())

	slots := timeslot.Generate(periods, timeslot.Config{
		Interval:  cfg.SlotInterval,
		BlockTime: cfg.BlockTime,
		Now:       now,
		CheckPax:  false,
	})
	if len(slots) == 0 {
		return view, nil
	}

	events, err := q.store.Events(ctx, cfg.ID, date)
	if err != nil {
		return nil, err
	}
	slots = event.FilterSlots(slots, events, cfg.Turnover, loc)
	if len(slots) == 0 {
		return view, nil
	}

	window := schedule.Interval{
		Start: periods[0].Start,
		End:   periods[len(periods)-1].End.Add(cfg.Turnover),
	}
	snap, err := q.store.SeatingSnapshot(ctx, cfg.ID, window)
	if err != nil {
		return nil, err
	}
	if p.PrivateRoom {
		if !snap.HasPrivateRoomFor(p.PartySize) {
			return view, nil
		}
	} else if !snap.HasCapacityFor(p.PartySize) {
		return view, nil
	}

	if offering := p.Offering; offering != nil {
		lead := offering.LeadTime
		if lead <= 0 {
			lead = cfg.LeadTime
		}
		slots = timeslot.ApplyLeadTime(slots, lead, now, offering.Name)
	}

	if p.PreferredTime != nil {
		preferred, perr := time.ParseInLocation(timeLayout, *p.PreferredTime, loc)
		if perr != nil {
			return nil, errs.Mark(perr, errs.ErrInvalidTimeFormat)
		}
		anchor := time.Date(date.Year(), date.Month(), date.Day(), preferred.Hour(), preferred.Minute(), 0, 0, loc)
		slots = timeslot.WindowAround(slots, anchor)
	}

	view.Slots = q.toSlotViews(ctx, cfg.ID, date, p.PartySize, slots)
	return view, nil
}

func (q *availabilityQueriesImpl) toSlotViews(ctx context.Context, outletID uuid.UUID, date time.Time, partySize int, slots []timeslot.Slot) []SlotView {
	views := make([]SlotView, len(slots))
	labels := make([]string, 0, len(slots))
	for i, s := range slots {
		views[i] = SlotView{Time: s.Label(), Enabled: s.Enabled, Message: s.Reason}
		if s.Enabled {
			labels = append(labels, s.Label())
		}
	}

	if q.coupons == nil || len(labels) == 0 {
		return views
	}
	tags, err := q.coupons.DiscountTags(ctx, outletID, date, partySize, labels)
	if err != nil {
		// Discounts are decoration; availability must not depend on them.
		q.logger.Warn("discount lookup failed", "outlet_id", outletID, "error", err)
		return views
	}
	for i := range views {
		if t, ok := tags[views[i].Time]; ok {
			views[i].Discounts = t
		}
	}
	return views
}

// Search fans one availability evaluation out per outlet. Outlets are
// independent, so the evaluations run concurrently and join before
// returning; result order follows the requested outlet order.
func (q *availabilityQueriesImpl) Search(ctx context.Context, p SearchParams) ([]*DayAvailabilityView, error) {
	if p.PartySize <= 0 {
		return nil, errs.ErrInvalidPartySize
	}
	if len(p.OutletIDs) == 0 {
		return nil, nil
	}

	results := make([]*DayAvailabilityView, len(p.OutletIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchFanout)

	for i, outletID := range p.OutletIDs {
		g.Go(func() error {
			view, err := q.ListSlots(gctx, ListSlotsParams{
				OutletID:      outletID,
				Date:          p.Date,
				PartySize:     p.PartySize,
				PreferredTime: p.PreferredTime,
			})
			if err != nil {
				return err
			}
			results[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func cacheKey(p ListSlotsParams) string {
	key := "availability:" + p.OutletID.String() + ":" + p.Date + ":" + strconv.Itoa(p.PartySize)
	if p.PreferredTime != nil {
		key += ":" + *p.PreferredTime
	}
	if p.Offering != nil {
		key += ":" + p.Offering.Name
	}
	if p.PrivateRoom {
		key += ":room"
	}
	return key
}
