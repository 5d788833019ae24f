package outlet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingTimeZone    = errors.New("outlet has no time zone configured")
	ErrInvalidSlotGrid    = errors.New("outlet slot interval must be positive")
	ErrInvalidTurnover    = errors.New("outlet turnover duration must be positive")
	ErrUnknownTimeZone    = errors.New("outlet time zone not recognized")
	ErrNegativePaxSpacing = errors.New("pax spacing cannot be negative")
)

// Config is the immutable per-call configuration of one outlet: the
// slot grid, browse block time, default offering lead time, turnover
// duration added to a start time to get the occupied interval, the
// global concurrent-headcount ceiling, and the IANA zone every temporal
// decision is made in.
type Config struct {
	ID           uuid.UUID
	Name         string
	TimeZone     string
	SlotInterval time.Duration
	BlockTime    time.Duration
	LeadTime     time.Duration
	Turnover     time.Duration
	PaxSpacing   int
}

func (c Config) Validate() error {
	if c.TimeZone == "" {
		return ErrMissingTimeZone
	}
	if c.SlotInterval <= 0 {
		return ErrInvalidSlotGrid
	}
	if c.Turnover <= 0 {
		return ErrInvalidTurnover
	}
	if c.PaxSpacing < 0 {
		return ErrNegativePaxSpacing
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return ErrUnknownTimeZone
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, ErrUnknownTimeZone
	}
	return loc, nil
}
