package builder

import (
	"time"

	"tablebook/internal/domain/seating"

	"github.com/google/uuid"
)

// SnapshotBuilder assembles a seating snapshot for allocator tests.
// Tables and groups get sequential declaration order as they are added.
type SnapshotBuilder struct {
	snap    seating.Snapshot
	nextSeq int32
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		snap: seating.Snapshot{EventBlocked: map[uuid.UUID]struct{}{}},
	}
}

func (b *SnapshotBuilder) WithTable(id uuid.UUID, capacity int) *SnapshotBuilder {
	b.nextSeq++
	b.snap.Tables = append(b.snap.Tables, seating.Table{
		ID:       id,
		Seq:      b.nextSeq,
		Capacity: capacity,
	})
	return b
}

func (b *SnapshotBuilder) WithSectionTable(id, sectionID uuid.UUID, capacity int, reservable bool) *SnapshotBuilder {
	b.nextSeq++
	b.snap.Tables = append(b.snap.Tables, seating.Table{
		ID:                id,
		SectionID:         sectionID,
		Seq:               b.nextSeq,
		Capacity:          capacity,
		SectionReservable: reservable,
	})
	return b
}

func (b *SnapshotBuilder) WithGroup(id uuid.UUID, maxPax int, tableIDs ...uuid.UUID) *SnapshotBuilder {
	b.nextSeq++
	b.snap.Groups = append(b.snap.Groups, seating.GroupPossibility{
		ID:       id,
		Seq:      b.nextSeq,
		TableIDs: tableIDs,
		MaxPax:   maxPax,
	})
	for i := range b.snap.Tables {
		for _, tid := range tableIDs {
			if b.snap.Tables[i].ID == tid {
				b.snap.Tables[i].GroupIDs = append(b.snap.Tables[i].GroupIDs, id)
			}
		}
	}
	return b
}

func (b *SnapshotBuilder) WithSection(sec seating.Section) *SnapshotBuilder {
	b.snap.Sections = append(b.snap.Sections, sec)
	return b
}

func (b *SnapshotBuilder) WithBooking(tableID uuid.UUID, start, end time.Time, status seating.BookingStatus, partySize int) *SnapshotBuilder {
	b.snap.Bookings = append(b.snap.Bookings, seating.Booking{
		ID:        uuid.New(),
		TableID:   tableID,
		InvoiceID: uuid.New(),
		Start:     start,
		End:       end,
		PartySize: partySize,
		Status:    status,
	})
	return b
}

func (b *SnapshotBuilder) WithEventBlocked(tableIDs ...uuid.UUID) *SnapshotBuilder {
	for _, id := range tableIDs {
		b.snap.EventBlocked[id] = struct{}{}
	}
	return b
}

func (b *SnapshotBuilder) WithPaxSpacing(limit int) *SnapshotBuilder {
	b.snap.PaxSpacing = limit
	return b
}

func (b *SnapshotBuilder) Build() *seating.Snapshot {
	return &b.snap
}
