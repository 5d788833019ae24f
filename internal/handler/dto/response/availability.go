package response

import (
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Time      string   `json:"time"`
	Enabled   bool     `json:"enabled"`
	Message   string   `json:"message,omitempty"`
	Discounts []string `json:"discounts,omitempty"`
}

type DayAvailabilityResponse struct {
	OutletID   uuid.UUID      `json:"outletId"`
	OutletName string         `json:"outletName"`
	Date       string         `json:"date"`
	PartySize  int            `json:"partySize"`
	Slots      []SlotResponse `json:"slots"`
}

func FromDayAvailabilityView(v *queries.DayAvailabilityView) DayAvailabilityResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{
			Time:      s.Time,
			Enabled:   s.Enabled,
			Message:   s.Message,
			Discounts: s.Discounts,
		}
	}
	return DayAvailabilityResponse{
		OutletID:   v.OutletID,
		OutletName: v.OutletName,
		Date:       v.Date,
		PartySize:  v.PartySize,
		Slots:      slots,
	}
}

func FromDayAvailabilityViews(views []*queries.DayAvailabilityView) []DayAvailabilityResponse {
	out := make([]DayAvailabilityResponse, 0, len(views))
	for _, v := range views {
		if v == nil {
			continue
		}
		out = append(out, FromDayAvailabilityView(v))
	}
	return out
}
