package schedule

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SectionPeriods is the merged opening runs of one section on one date.
type SectionPeriods struct {
	SectionID uuid.UUID
	Periods   []Interval
}

// ResolvedDay is the authoritative trading hours of an outlet for one
// calendar date, after overrides have been folded in.
type ResolvedDay struct {
	Date     time.Time // midnight in the outlet zone
	Weekday  time.Weekday
	Sections []SectionPeriods
}

// AllPeriods flattens every section's runs into one merged outlet-level set.
func (d ResolvedDay) AllPeriods() []Interval {
	var all []Interval
	for _, s := range d.Sections {
		all = append(all, s.Periods...)
	}
	return Merge(all)
}

// SectionPeriodsFor returns the runs of one section, or nil when the
// section has none that date.
func (d ResolvedDay) SectionPeriodsFor(sectionID uuid.UUID) []Interval {
	for _, s := range d.Sections {
		if s.SectionID == sectionID {
			return s.Periods
		}
	}
	return nil
}

func (d ResolvedDay) IsClosed() bool {
	return len(d.Sections) == 0
}

// Resolver folds effective-dated overrides over a weekly recurring
// schedule. Both layers stay immutable; resolution is a pure pass per
// (outlet, date).
type Resolver struct {
	logger *slog.Logger
}

func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ResolveDay computes the trading periods for one date in loc.
//
// For every (section, weekday) pair with at least one applicable
// override, the weekly entries for that pair are discarded entirely:
// an open override replaces them with its own periods, a closed one
// contributes nothing. Pairs without an override use the active weekly
// entries. Rows with a missing or malformed clock time are skipped and
// logged, never defaulted.
func (r *Resolver) ResolveDay(date time.Time, loc *time.Location, weekly []WeeklyEntry, overrides []Override) ResolvedDay {
	day := startOfDay(date, loc)
	weekday := day.Weekday()

	overridden := make(map[uuid.UUID]bool)
	periods := make(map[uuid.UUID][]Interval)

	for _, o := range overrides {
		if o.Weekday != weekday || !o.AppliesOn(day, loc) {
			continue
		}
		overridden[o.SectionID] = true
		if !o.Open {
			continue
		}
		iv, err := periodOn(day, o.OpeningTime, o.ClosingTime, loc)
		if err != nil {
			r.logger.Warn("skipping schedule override with invalid times",
				"outlet_id", o.OutletID, "section_id", o.SectionID, "error", err)
			continue
		}
		periods[o.SectionID] = append(periods[o.SectionID], iv)
	}

	for _, w := range weekly {
		if !w.Active || w.Weekday != weekday || overridden[w.SectionID] {
			continue
		}
		iv, err := periodOn(day, w.OpeningTime, w.ClosingTime, loc)
		if err != nil {
			r.logger.Warn("skipping weekly schedule entry with invalid times",
				"outlet_id", w.OutletID, "section_id", w.SectionID, "error", err)
			continue
		}
		periods[w.SectionID] = append(periods[w.SectionID], iv)
	}

	resolved := ResolvedDay{Date: day, Weekday: weekday}
	for sectionID, ivs := range periods {
		resolved.Sections = append(resolved.Sections, SectionPeriods{
			SectionID: sectionID,
			Periods:   Merge(ivs),
		})
	}
	sort.Slice(resolved.Sections, func(i, j int) bool {
		a, b := resolved.Sections[i], resolved.Sections[j]
		if !a.Periods[0].Start.Equal(b.Periods[0].Start) {
			return a.Periods[0].Start.Before(b.Periods[0].Start)
		}
		return a.SectionID.String() < b.SectionID.String()
	})
	return resolved
}

// ResolveWindow projects a rolling window of days starting at from.
func (r *Resolver) ResolveWindow(from time.Time, days int, loc *time.Location, weekly []WeeklyEntry, overrides []Override) []ResolvedDay {
	out := make([]ResolvedDay, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, r.ResolveDay(from.AddDate(0, 0, i), loc, weekly, overrides))
	}
	return out
}
