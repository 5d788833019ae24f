package seating

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidPartySize = errors.New("party size must be positive")
	ErrInvalidInterval  = errors.New("booking start must be before end")
	ErrTimeslotFull     = errors.New("timeslot full")
	ErrRoomNotFound     = errors.New("private room section not found")
)

// Allocator decides which table set, if any, can hold a party over one
// interval. The default chain tries the single-table path, then the
// group path; the first applicable path decides: when capacity-
// sufficient tables exist but all conflict, the outlet is full for that
// slot and groups are not consulted.
type Allocator struct {
	chain []Strategy
}

func NewAllocator() *Allocator {
	return &Allocator{
		chain: []Strategy{singleTableStrategy{}, groupStrategy{}},
	}
}

// Allocate runs the default chain. A nil error always carries a
// non-nil assignment; ErrTimeslotFull means no table set is free over
// the interval, not that the outlet lacks capacity outright.
func (a *Allocator) Allocate(req Request, snap *Snapshot) (*Assignment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if exceedsPaxSpacing(req, snap) {
		return nil, ErrTimeslotFull
	}

	for _, s := range a.chain {
		if !s.Applicable(req, snap) {
			continue
		}
		if assignment := s.TryAllocate(req, snap); assignment != nil {
			return assignment, nil
		}
		return nil, ErrTimeslotFull
	}
	return nil, ErrTimeslotFull
}

// AllocateRoom books a private-room section as a unit, bypassing the
// default chain. Used only when the caller explicitly requests the room
// or a dining option forces the override.
func (a *Allocator) AllocateRoom(req Request, snap *Snapshot, sectionID uuid.UUID) (*Assignment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	sec, ok := snap.sectionByID(sectionID)
	if !ok || !sec.PrivateRoom {
		return nil, ErrRoomNotFound
	}
	if !sec.OverrideCapacity && exceedsPaxSpacing(req, snap) {
		return nil, ErrTimeslotFull
	}

	s := privateRoomStrategy{sectionID: sectionID}
	if !s.Applicable(req, snap) {
		return nil, ErrTimeslotFull
	}
	if assignment := s.TryAllocate(req, snap); assignment != nil {
		return assignment, nil
	}
	return nil, ErrTimeslotFull
}

func validate(req Request) error {
	if req.PartySize <= 0 {
		return ErrInvalidPartySize
	}
	if !req.Start.Before(req.End) {
		return ErrInvalidInterval
	}
	return nil
}

func exceedsPaxSpacing(req Request, snap *Snapshot) bool {
	if snap.PaxSpacing <= 0 {
		return false
	}
	return snap.concurrentPax(req.Start, req.End)+req.PartySize > snap.PaxSpacing
}
