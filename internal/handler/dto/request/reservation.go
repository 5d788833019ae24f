package request

import (
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	OutletID      uuid.UUID  `json:"outlet_id" binding:"required"`
	Date          string     `json:"date" binding:"required"`
	Time          string     `json:"time" binding:"required"`
	PartySize     int        `json:"party_size" binding:"required,min=1"`
	PrivateRoomID *uuid.UUID `json:"private_room_id,omitempty"`
	InvoiceID     *uuid.UUID `json:"invoice_id,omitempty"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r CreateReservationRequest) ToParams() commands.ReserveParams {
	return commands.ReserveParams{
		OutletID:      r.OutletID,
		Date:          r.Date,
		Time:          r.Time,
		PartySize:     r.PartySize,
		PrivateRoomID: r.PrivateRoomID,
		InvoiceID:     r.InvoiceID,
	}
}
