//go:build unit

package seating_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/seating"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	start = time.Date(2026, 9, 14, 19, 0, 0, 0, time.UTC)
	end   = start.Add(2 * time.Hour)
)

func request(partySize int) seating.Request {
	return seating.Request{PartySize: partySize, Start: start, End: end, Now: now}
}

func TestAllocateValidation(t *testing.T) {
	alloc := seating.NewAllocator()
	snap := builder.NewSnapshotBuilder().WithTable(uuid.New(), 4).Build()

	_, err := alloc.Allocate(seating.Request{PartySize: 0, Start: start, End: end}, snap)
	assert.ErrorIs(t, err, seating.ErrInvalidPartySize)

	_, err = alloc.Allocate(seating.Request{PartySize: 2, Start: end, End: start}, snap)
	assert.ErrorIs(t, err, seating.ErrInvalidInterval)
}

func TestSingleTablePath(t *testing.T) {
	alloc := seating.NewAllocator()

	t.Run("party exactly at capacity fits", func(t *testing.T) {
		tableID := uuid.New()
		snap := builder.NewSnapshotBuilder().WithTable(tableID, 4).Build()

		got, err := alloc.Allocate(request(4), snap)
		require.NoError(t, err)
		assert.Equal(t, seating.KindSingleTable, got.Kind)
		require.Len(t, got.Tables, 1)
		assert.Equal(t, tableID, got.Tables[0].ID)
	})

	t.Run("prefers tables outside any group", func(t *testing.T) {
		grouped := uuid.New()
		plain := uuid.New()
		partner := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(grouped, 4).
			WithTable(partner, 2).
			WithTable(plain, 4).
			WithGroup(uuid.New(), 6, grouped, partner).
			Build()

		got, err := alloc.Allocate(request(4), snap)
		require.NoError(t, err)
		assert.Equal(t, plain, got.Tables[0].ID, "group-linked table stays free for combinations")
	})

	t.Run("prefers tables outside reservable sections", func(t *testing.T) {
		roomID := uuid.New()
		roomTable := uuid.New()
		floorTable := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithSectionTable(roomTable, roomID, 6, true).
			WithTable(floorTable, 6).
			Build()

		got, err := alloc.Allocate(request(4), snap)
		require.NoError(t, err)
		assert.Equal(t, floorTable, got.Tables[0].ID)
	})

	t.Run("deterministic by declaration order on ties", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()
		build := func() *seating.Snapshot {
			return builder.NewSnapshotBuilder().
				WithTable(first, 4).
				WithTable(second, 4).
				Build()
		}

		for i := 0; i < 5; i++ {
			got, err := alloc.Allocate(request(4), build())
			require.NoError(t, err)
			assert.Equal(t, first, got.Tables[0].ID)
		}
	})

	t.Run("overlapping blocking booking excludes the table", func(t *testing.T) {
		tableID := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(tableID, 4).
			WithBooking(tableID, start.Add(-time.Hour), start.Add(time.Hour), seating.StatusBooked, 2).
			Build()

		_, err := alloc.Allocate(request(4), snap)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull)
	})

	t.Run("released statuses do not block", func(t *testing.T) {
		tableID := uuid.New()
		for _, status := range []seating.BookingStatus{seating.StatusCancelled, seating.StatusNoShow, seating.StatusLeft} {
			snap := builder.NewSnapshotBuilder().
				WithTable(tableID, 4).
				WithBooking(tableID, start, end, status, 2).
				Build()

			_, err := alloc.Allocate(request(4), snap)
			assert.NoError(t, err, "status %s must release the table", status)
		}
	})

	t.Run("back-to-back bookings do not collide", func(t *testing.T) {
		tableID := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(tableID, 4).
			WithBooking(tableID, start.Add(-2*time.Hour), start, seating.StatusConfirmed, 4).
			WithBooking(tableID, end, end.Add(2*time.Hour), seating.StatusBooked, 4).
			Build()

		_, err := alloc.Allocate(request(4), snap)
		assert.NoError(t, err, "half-open intervals touching at a boundary are distinct")
	})
}

func TestGroupPath(t *testing.T) {
	alloc := seating.NewAllocator()

	t.Run("group fallback when no single table is big enough", func(t *testing.T) {
		t1, t2, t3 := uuid.New(), uuid.New(), uuid.New()
		groupID := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(t1, 2).
			WithTable(t2, 2).
			WithTable(t3, 2).
			WithGroup(groupID, 6, t1, t2, t3).
			Build()

		got, err := alloc.Allocate(request(6), snap)
		require.NoError(t, err)
		assert.Equal(t, seating.KindGroup, got.Kind)
		require.NotNil(t, got.GroupID)
		assert.Equal(t, groupID, *got.GroupID)
		assert.Len(t, got.Tables, 3, "the whole combination is booked as one unit")
	})

	t.Run("group skipped when any member conflicts", func(t *testing.T) {
		t1, t2 := uuid.New(), uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(t1, 2).
			WithTable(t2, 2).
			WithGroup(uuid.New(), 6, t1, t2).
			WithBooking(t2, start, end, seating.StatusBooked, 2).
			Build()

		_, err := alloc.Allocate(request(6), snap)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull)
	})

	t.Run("groups tried in declaration order", func(t *testing.T) {
		t1, t2, t3, t4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
		firstGroup := uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(t1, 2).WithTable(t2, 2).WithTable(t3, 2).WithTable(t4, 2).
			WithGroup(firstGroup, 6, t1, t2, t3).
			WithGroup(uuid.New(), 8, t1, t2, t3, t4).
			Build()

		got, err := alloc.Allocate(request(5), snap)
		require.NoError(t, err)
		assert.Equal(t, firstGroup, *got.GroupID)
	})

	t.Run("busy single tables do not fall through to groups", func(t *testing.T) {
		big := uuid.New()
		t1, t2 := uuid.New(), uuid.New()
		snap := builder.NewSnapshotBuilder().
			WithTable(big, 6).
			WithTable(t1, 4).
			WithTable(t2, 4).
			WithGroup(uuid.New(), 8, t1, t2).
			WithBooking(big, start, end, seating.StatusBooked, 6).
			Build()

		_, err := alloc.Allocate(request(6), snap)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull,
			"capacity-sufficient tables exist, so the single-table path decides")
	})
}

func TestCapacityMonotonicity(t *testing.T) {
	alloc := seating.NewAllocator()
	t1, t2, t3 := uuid.New(), uuid.New(), uuid.New()
	build := func() *seating.Snapshot {
		return builder.NewSnapshotBuilder().
			WithTable(t1, 2).
			WithTable(t2, 2).
			WithTable(t3, 2).
			WithGroup(uuid.New(), 6, t1, t2, t3).
			Build()
	}

	_, err := alloc.Allocate(request(6), build())
	require.NoError(t, err)

	for party := 1; party < 6; party++ {
		_, err := alloc.Allocate(request(party), build())
		assert.NoError(t, err, "party of %d must fit when 6 does", party)
	}
}

func TestEventBlockedTables(t *testing.T) {
	alloc := seating.NewAllocator()
	tableID := uuid.New()
	snap := builder.NewSnapshotBuilder().
		WithTable(tableID, 4).
		WithEventBlocked(tableID).
		Build()

	_, err := alloc.Allocate(request(4), snap)
	assert.ErrorIs(t, err, seating.ErrTimeslotFull,
		"event-reserved table unavailable even with the outlet open")
}

func TestPaxSpacing(t *testing.T) {
	alloc := seating.NewAllocator()
	t1, t2 := uuid.New(), uuid.New()

	snap := builder.NewSnapshotBuilder().
		WithTable(t1, 4).
		WithTable(t2, 4).
		WithBooking(t1, start, end, seating.StatusConfirmed, 4).
		WithPaxSpacing(6).
		Build()

	_, err := alloc.Allocate(request(4), snap)
	assert.ErrorIs(t, err, seating.ErrTimeslotFull, "headcount ceiling of 6 rejects 4+4")

	_, err = alloc.Allocate(request(2), snap)
	assert.NoError(t, err, "4+2 stays under the ceiling")
}

func TestPrivateRoomPath(t *testing.T) {
	alloc := seating.NewAllocator()
	roomID := uuid.New()
	rt1, rt2 := uuid.New(), uuid.New()

	newRoomSnapshot := func(room seating.Section) *builder.SnapshotBuilder {
		return builder.NewSnapshotBuilder().
			WithSectionTable(rt1, roomID, 4, true).
			WithSectionTable(rt2, roomID, 4, true).
			WithSection(room)
	}
	room := seating.Section{ID: roomID, Name: "Garden Room", PrivateRoom: true, Capacity: 8}

	t.Run("books every member table as a unit", func(t *testing.T) {
		snap := newRoomSnapshot(room).Build()

		got, err := alloc.AllocateRoom(request(6), snap, roomID)
		require.NoError(t, err)
		assert.Equal(t, seating.KindPrivateRoom, got.Kind)
		assert.Len(t, got.Tables, 2)
		require.NotNil(t, got.SectionID)
		assert.Equal(t, roomID, *got.SectionID)
	})

	t.Run("any member conflict rejects the room", func(t *testing.T) {
		snap := newRoomSnapshot(room).
			WithBooking(rt2, start, end, seating.StatusBooked, 2).
			Build()

		_, err := alloc.AllocateRoom(request(6), snap, roomID)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull)
	})

	t.Run("room block time rejects near-term starts", func(t *testing.T) {
		blocked := room
		blocked.BlockTime = 12 * time.Hour
		snap := newRoomSnapshot(blocked).Build()

		_, err := alloc.AllocateRoom(request(6), snap, roomID)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull, "19:00 start inside now+12h")
	})

	t.Run("capacity override bypasses seat math", func(t *testing.T) {
		flat := room
		flat.OverrideCapacity = true
		snap := newRoomSnapshot(flat).Build()

		_, err := alloc.AllocateRoom(request(20), snap, roomID)
		assert.NoError(t, err)
	})

	t.Run("over capacity without override rejects", func(t *testing.T) {
		snap := newRoomSnapshot(room).Build()

		_, err := alloc.AllocateRoom(request(20), snap, roomID)
		assert.ErrorIs(t, err, seating.ErrTimeslotFull)
	})

	t.Run("unknown section", func(t *testing.T) {
		snap := newRoomSnapshot(room).Build()

		_, err := alloc.AllocateRoom(request(4), snap, uuid.New())
		assert.ErrorIs(t, err, seating.ErrRoomNotFound)
	})
}

func TestAllocationDeterminism(t *testing.T) {
	alloc := seating.NewAllocator()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	build := func() *seating.Snapshot {
		b := builder.NewSnapshotBuilder()
		for _, id := range ids {
			b.WithTable(id, 4)
		}
		return b.Build()
	}

	first, err := alloc.Allocate(request(3), build())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := alloc.Allocate(request(3), build())
		require.NoError(t, err)
		assert.Equal(t, first.Tables[0].ID, again.Tables[0].ID)
	}
}
