package response

import (
	"time"

	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	OutletID   uuid.UUID   `json:"outletId"`
	InvoiceID  uuid.UUID   `json:"invoiceId"`
	BookingIDs []uuid.UUID `json:"bookingIds"`
	TableIDs   []uuid.UUID `json:"tableIds"`
	Kind       string      `json:"kind"`
	StartsAt   time.Time   `json:"startsAt"`
	EndsAt     time.Time   `json:"endsAt"`
}

func FromAssignmentView(v *commands.AssignmentView) ReservationResponse {
	return ReservationResponse{
		OutletID:   v.OutletID,
		InvoiceID:  v.InvoiceID,
		BookingIDs: v.BookingIDs,
		TableIDs:   v.TableIDs,
		Kind:       v.Kind,
		StartsAt:   v.StartsAt,
		EndsAt:     v.EndsAt,
	}
}
