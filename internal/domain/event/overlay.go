package event

import (
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/timeslot"

	"github.com/google/uuid"
)

// TicketedEvent is a time-boxed special event. When BlockTables is set
// it reserves specific tables exclusively for attendees during its
// daily [OpeningTime, ClosingTime) sub-window; otherwise it only caps
// ticket sales and leaves normal reservations untouched.
type TicketedEvent struct {
	ID          uuid.UUID
	OutletID    uuid.UUID
	StartDate   time.Time // calendar date
	EndDate     time.Time
	OpeningTime string // "HH:mm"
	ClosingTime string
	BlockTables bool
	TableIDs    []uuid.UUID
	MaxTickets  int
	TicketsSold int
}

// ActiveOn reports whether the event's date range covers date, both
// bounds taken as whole days in loc. The overlay must see the same zone
// as the resolver or a boundary slot lands on the wrong day.
func (e TicketedEvent) ActiveOn(date time.Time, loc *time.Location) bool {
	d := startOfDay(date, loc)
	from := civilDate(e.StartDate, loc)
	to := civilDate(e.EndDate, loc).AddDate(0, 0, 1)
	return !d.Before(from) && d.Before(to)
}

// WindowOn projects the event's daily sub-window onto date.
func (e TicketedEvent) WindowOn(date time.Time, loc *time.Location) (schedule.Interval, bool) {
	if !e.ActiveOn(date, loc) {
		return schedule.Interval{}, false
	}
	open, err := time.ParseInLocation("15:04", e.OpeningTime, loc)
	if err != nil {
		return schedule.Interval{}, false
	}
	cls, err := time.ParseInLocation("15:04", e.ClosingTime, loc)
	if err != nil {
		return schedule.Interval{}, false
	}
	d := startOfDay(date, loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), open.Hour(), open.Minute(), 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day(), cls.Hour(), cls.Minute(), 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return schedule.Interval{Start: start, End: end}, true
}

func (e TicketedEvent) RemainingTickets() int {
	remaining := e.MaxTickets - e.TicketsSold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BlockedTables collects the table ids withdrawn by exclusive events
// whose window overlaps [start, end) on that date.
func BlockedTables(events []TicketedEvent, start, end time.Time, loc *time.Location) map[uuid.UUID]struct{} {
	blocked := make(map[uuid.UUID]struct{})
	window := schedule.Interval{Start: start, End: end}
	for _, e := range events {
		if !e.BlockTables {
			continue
		}
		ev, ok := e.WindowOn(start, loc)
		if !ok || !ev.Overlaps(window) {
			continue
		}
		for _, id := range e.TableIDs {
			blocked[id] = struct{}{}
		}
	}
	return blocked
}

// FilterSlots subtracts exclusive event windows from a generated slot
// list: a slot is dropped when its occupied interval overlaps any
// blocking event window on that date.
func FilterSlots(slots []timeslot.Slot, events []TicketedEvent, turnover time.Duration, loc *time.Location) []timeslot.Slot {
	if len(events) == 0 {
		return slots
	}

	var out []timeslot.Slot
	for _, s := range slots {
		occupied := schedule.Interval{Start: s.Start, End: s.Start.Add(turnover)}
		conflict := false
		for _, e := range events {
			if !e.BlockTables {
				continue
			}
			window, ok := e.WindowOn(s.Start, loc)
			if ok && window.Overlaps(occupied) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, s)
		}
	}
	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// civilDate pins a calendar-date value to midnight in loc. Date columns
// arrive as midnight UTC; rebasing that instant into a zone west of UTC
// lands on the previous day, so the Y/M/D components are read as-is.
func civilDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
