package timeslot

import (
	"fmt"
	"time"

	"tablebook/internal/domain/schedule"
)

const labelLayout = "15:04"

// Slot is one candidate booking start on the outlet's grid. A slot may
// survive pruning yet be disabled for a specific offering whose lead
// time has not been met; those stay visible with a Reason message.
type Slot struct {
	Start   time.Time
	Enabled bool
	Reason  string
}

func (s Slot) Label() string {
	return s.Start.Format(labelLayout)
}

// Config carries the per-outlet inputs of one generation pass. Now must
// already be localized to the outlet zone.
type Config struct {
	Interval  time.Duration
	BlockTime time.Duration
	Now       time.Time
	// CheckPax marks the commit path; browsing (false) additionally
	// prunes slots inside the outlet's block-time window.
	CheckPax bool
}

// Generate walks each resolved period on a fixed grid, emitting a slot
// at every tick strictly before the period's closing time. Past slots
// are dropped only when the period's date is today in the outlet zone.
func Generate(periods []schedule.Interval, cfg Config) []Slot {
	if cfg.Interval <= 0 {
		return nil
	}

	var slots []Slot
	for _, p := range periods {
		for tick := p.Start; tick.Before(p.End); tick = tick.Add(cfg.Interval) {
			if sameDay(tick, cfg.Now) && tick.Before(cfg.Now) {
				continue
			}
			if !cfg.CheckPax && tick.Before(cfg.Now.Add(cfg.BlockTime)) {
				continue
			}
			slots = append(slots, Slot{Start: tick, Enabled: true})
		}
	}
	return slots
}

// ApplyLeadTime disables slots that fall before now+leadTime instead of
// removing them: the constraint belongs to one ancillary offering, not
// to the outlet's grid.
func ApplyLeadTime(slots []Slot, leadTime time.Duration, now time.Time, offering string) []Slot {
	if leadTime <= 0 {
		return slots
	}
	threshold := now.Add(leadTime)
	out := make([]Slot, len(slots))
	for i, s := range slots {
		if s.Enabled && s.Start.Before(threshold) {
			s.Enabled = false
			s.Reason = fmt.Sprintf("%s must be booked %s in advance", offering, formatLead(leadTime))
		}
		out[i] = s
	}
	return out
}

// WindowAround narrows the slot list to 3 slots before and 4 after the
// one nearest the preferred time. The anchor is the earliest slot not
// earlier than preferred; when preferred is after every slot, the last
// slot anchors the window. A preferred time already on the grid anchors
// itself.
func WindowAround(slots []Slot, preferred time.Time) []Slot {
	if len(slots) == 0 {
		return slots
	}

	anchor := len(slots) - 1
	for i, s := range slots {
		if !s.Start.Before(preferred) {
			anchor = i
			break
		}
	}

	lo := anchor - 3
	if lo < 0 {
		lo = 0
	}
	hi := anchor + 5
	if hi > len(slots) {
		hi = len(slots)
	}
	return slots[lo:hi]
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func formatLead(d time.Duration) string {
	if d >= 24*time.Hour && d%(24*time.Hour) == 0 {
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
