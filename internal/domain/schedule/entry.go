package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingClockTime = errors.New("schedule entry missing opening or closing time")

const clockLayout = "15:04"

// WeeklyEntry is one recurring opening period for a section on a weekday.
// Several entries may exist for the same (section, weekday) to express
// split hours; the resolver merges them.
type WeeklyEntry struct {
	OutletID    uuid.UUID
	SectionID   uuid.UUID
	Weekday     time.Weekday
	OpeningTime string // "HH:mm"
	ClosingTime string
	Active      bool
}

// Override supersedes the weekly entries for its (section, weekday)
// whenever the target date falls inside [EffectiveFrom, EffectiveTo],
// both interpreted as whole days in the outlet zone. Open=false means
// the section is closed for that window and carries no periods.
type Override struct {
	OutletID      uuid.UUID
	SectionID     uuid.UUID
	Weekday       time.Weekday
	OpeningTime   string
	ClosingTime   string
	EffectiveFrom time.Time // calendar date
	EffectiveTo   time.Time
	Open          bool
}

// AppliesOn reports whether the override covers date, compared as whole
// days in loc so a zone mismatch cannot shift the boundary by a day.
func (o Override) AppliesOn(date time.Time, loc *time.Location) bool {
	d := startOfDay(date, loc)
	from := civilDate(o.EffectiveFrom, loc)
	to := civilDate(o.EffectiveTo, loc).AddDate(0, 0, 1) // end of day, exclusive
	return !d.Before(from) && d.Before(to)
}

// periodOn projects an "HH:mm" pair onto a concrete date in loc.
func periodOn(date time.Time, opening, closing string, loc *time.Location) (Interval, error) {
	if opening == "" || closing == "" {
		return Interval{}, ErrMissingClockTime
	}
	open, err := time.ParseInLocation(clockLayout, opening, loc)
	if err != nil {
		return Interval{}, err
	}
	cls, err := time.ParseInLocation(clockLayout, closing, loc)
	if err != nil {
		return Interval{}, err
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), open.Hour(), open.Minute(), 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), cls.Hour(), cls.Minute(), 0, 0, loc)
	if !end.After(start) {
		// Closing at or before opening means the period runs past midnight.
		end = end.AddDate(0, 0, 1)
	}
	return Interval{Start: start, End: end}, nil
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
