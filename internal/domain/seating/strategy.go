package seating

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type AllocationKind string

const (
	KindSingleTable AllocationKind = "single_table"
	KindGroup       AllocationKind = "group"
	KindPrivateRoom AllocationKind = "private_room"
)

// Request is one concrete seating question: can the outlet hold
// PartySize guests over [Start, End)? Now must be localized to the
// outlet zone; the private-room path compares it against the section's
// own block time.
type Request struct {
	PartySize int
	Start     time.Time
	End       time.Time
	Now       time.Time
}

// Assignment is the chosen table set for one request. Group and
// private-room assignments carry every member table; partial use of
// either is not supported.
type Assignment struct {
	Kind      AllocationKind
	Tables    []Table
	GroupID   *uuid.UUID
	SectionID *uuid.UUID
}

func (a *Assignment) TableIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(a.Tables))
	for i, t := range a.Tables {
		ids[i] = t.ID
	}
	return ids
}

// Strategy is one seating path. Applicable gates whether the path can
// ever hold the party given the snapshot, before bookings are
// considered; TryAllocate returns nil when every candidate conflicts.
type Strategy interface {
	Kind() AllocationKind
	Applicable(req Request, snap *Snapshot) bool
	TryAllocate(req Request, snap *Snapshot) *Assignment
}

// singleTableStrategy seats the whole party at one table. Preference
// order keeps combinable tables free: tables outside every group first,
// then tables outside reservable sections, then declaration order.
type singleTableStrategy struct{}

func (singleTableStrategy) Kind() AllocationKind { return KindSingleTable }

func (singleTableStrategy) Applicable(req Request, snap *Snapshot) bool {
	for _, t := range snap.Tables {
		if t.Capacity >= req.PartySize {
			return true
		}
	}
	return false
}

func (singleTableStrategy) TryAllocate(req Request, snap *Snapshot) *Assignment {
	var candidates []Table
	for _, t := range snap.Tables {
		if t.Capacity >= req.PartySize && snap.tableFree(t.ID, req.Start, req.End) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.InAnyGroup() != b.InAnyGroup() {
			return !a.InAnyGroup()
		}
		if a.SectionReservable != b.SectionReservable {
			return !a.SectionReservable
		}
		return a.Seq < b.Seq
	})

	chosen := candidates[0]
	return &Assignment{Kind: KindSingleTable, Tables: []Table{chosen}}
}

// groupStrategy seats the party across a pre-declared combination,
// booked in full. Groups are tried in declaration order.
//
// MinPax is deliberately not a gate here: rejecting a smaller party
// from a larger combination would break capacity monotonicity.
type groupStrategy struct{}

func (groupStrategy) Kind() AllocationKind { return KindGroup }

func (groupStrategy) Applicable(req Request, snap *Snapshot) bool {
	for _, g := range snap.Groups {
		if g.MaxPax >= req.PartySize {
			return true
		}
	}
	return false
}

func (groupStrategy) TryAllocate(req Request, snap *Snapshot) *Assignment {
	groups := make([]GroupPossibility, len(snap.Groups))
	copy(groups, snap.Groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Seq < groups[j].Seq })

	for _, g := range groups {
		if g.MaxPax < req.PartySize {
			continue
		}
		tables, ok := freeMembers(snap, g.TableIDs, req)
		if !ok {
			continue
		}
		id := g.ID
		return &Assignment{Kind: KindGroup, Tables: tables, GroupID: &id}
	}
	return nil
}

// privateRoomStrategy books a private-room section as a unit. It is
// only consulted when the caller explicitly asks for the room, so it
// never participates in the default chain.
type privateRoomStrategy struct {
	sectionID uuid.UUID
}

func (privateRoomStrategy) Kind() AllocationKind { return KindPrivateRoom }

func (s privateRoomStrategy) Applicable(req Request, snap *Snapshot) bool {
	sec, ok := snap.sectionByID(s.sectionID)
	if !ok || !sec.PrivateRoom {
		return false
	}
	return sec.OverrideCapacity || sec.Capacity >= req.PartySize
}

func (s privateRoomStrategy) TryAllocate(req Request, snap *Snapshot) *Assignment {
	sec, ok := snap.sectionByID(s.sectionID)
	if !ok {
		return nil
	}
	if sec.BlockTime > 0 && req.Start.Before(req.Now.Add(sec.BlockTime)) {
		return nil
	}

	var memberIDs []uuid.UUID
	for _, t := range snap.Tables {
		if t.SectionID == sec.ID {
			memberIDs = append(memberIDs, t.ID)
		}
	}
	if len(memberIDs) == 0 {
		return nil
	}
	tables, ok := freeMembers(snap, memberIDs, req)
	if !ok {
		return nil
	}
	id := sec.ID
	return &Assignment{Kind: KindPrivateRoom, Tables: tables, SectionID: &id}
}

// freeMembers resolves every member table and verifies none conflicts
// in the requested interval.
func freeMembers(snap *Snapshot, tableIDs []uuid.UUID, req Request) ([]Table, bool) {
	tables := make([]Table, 0, len(tableIDs))
	for _, id := range tableIDs {
		t, ok := snap.tableByID(id)
		if !ok {
			return nil, false
		}
		if !snap.tableFree(id, req.Start, req.End) {
			return nil, false
		}
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Seq < tables[j].Seq })
	return tables, true
}
