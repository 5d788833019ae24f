package seating

import (
	"time"

	"github.com/google/uuid"
)

// Table is one physical table of an outlet. Seq mirrors the serial
// column of the row and gives the allocator a stable declaration order.
type Table struct {
	ID        uuid.UUID
	OutletID  uuid.UUID
	SectionID uuid.UUID
	Seq       int32
	Capacity  int
	// GroupIDs lists the group possibilities this table is a member of.
	GroupIDs []uuid.UUID
	// SectionReservable marks tables in sections that must be booked as
	// a whole (private rooms); the single-table path avoids them.
	SectionReservable bool
}

func (t Table) InAnyGroup() bool {
	return len(t.GroupIDs) > 0
}

// GroupPossibility is a pre-declared union of tables bookable as one
// unit for parties no single table can hold. Selection is all-or-
// nothing: the whole table set is booked together.
type GroupPossibility struct {
	ID       uuid.UUID
	OutletID uuid.UUID
	Seq      int32
	TableIDs []uuid.UUID
	MinPax   int
	MaxPax   int
}

// Section is a named area of an outlet. Private rooms carry their own
// block time and capacity; OverrideCapacity rooms are booked as a flat
// unit regardless of seat count.
type Section struct {
	ID               uuid.UUID
	OutletID         uuid.UUID
	Name             string
	PrivateRoom      bool
	BlockTime        time.Duration
	Capacity         int
	OverrideCapacity bool
}

// Snapshot is the read-mostly world one allocator pass scores over: the
// outlet's tables, declared groups, private-room sections, bookings that
// could collide with the requested interval, and tables withdrawn by a
// ticketed event. The allocator never mutates it.
type Snapshot struct {
	Tables   []Table
	Groups   []GroupPossibility
	Sections []Section
	Bookings []Booking
	// EventBlocked holds table ids reserved by an exclusive ticketed
	// event overlapping the requested interval.
	EventBlocked map[uuid.UUID]struct{}
	// PaxSpacing caps concurrent headcount across the outlet; zero
	// disables the ceiling.
	PaxSpacing int
}

func (s *Snapshot) tableByID(id uuid.UUID) (Table, bool) {
	for _, t := range s.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

func (s *Snapshot) sectionByID(id uuid.UUID) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

func (s *Snapshot) isEventBlocked(tableID uuid.UUID) bool {
	_, blocked := s.EventBlocked[tableID]
	return blocked
}

// tableFree reports whether the table has no blocking booking
// overlapping [start, end) and is not withdrawn by an event.
func (s *Snapshot) tableFree(tableID uuid.UUID, start, end time.Time) bool {
	if s.isEventBlocked(tableID) {
		return false
	}
	for _, b := range s.Bookings {
		if b.TableID == tableID && b.Blocks() && b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// concurrentPax sums the party sizes of blocking bookings overlapping
// the interval, counting each invoice once even when it spans several
// tables of a group booking.
func (s *Snapshot) concurrentPax(start, end time.Time) int {
	seen := make(map[uuid.UUID]struct{})
	total := 0
	for _, b := range s.Bookings {
		if !b.Blocks() || !b.Overlaps(start, end) {
			continue
		}
		if _, dup := seen[b.InvoiceID]; dup {
			continue
		}
		seen[b.InvoiceID] = struct{}{}
		total += b.PartySize
	}
	return total
}

// HasCapacityFor is the cheap browse-mode existence check: could any
// table, group, or private room ever hold the party, ignoring bookings.
func (s *Snapshot) HasCapacityFor(partySize int) bool {
	for _, t := range s.Tables {
		if t.Capacity >= partySize {
			return true
		}
	}
	for _, g := range s.Groups {
		if g.MaxPax >= partySize {
			return true
		}
	}
	for _, sec := range s.Sections {
		if sec.PrivateRoom && (sec.OverrideCapacity || sec.Capacity >= partySize) {
			return true
		}
	}
	return false
}

// HasPrivateRoomFor restricts the browse check to private rooms.
func (s *Snapshot) HasPrivateRoomFor(partySize int) bool {
	for _, sec := range s.Sections {
		if sec.PrivateRoom && (sec.OverrideCapacity || sec.Capacity >= partySize) {
			return true
		}
	}
	return false
}
