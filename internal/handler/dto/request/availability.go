package request

import (
	"strings"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListSlotsRequest struct {
	Date          string  `form:"date" binding:"required"`
	PartySize     int     `form:"party_size" binding:"required,min=1"`
	PreferredTime *string `form:"preferred_time"`
	Offering      *string `form:"offering"`
	PrivateRoom   bool    `form:"private_room"`
}

func (r ListSlotsRequest) ToParams(outletID uuid.UUID) queries.ListSlotsParams {
	p := queries.ListSlotsParams{
		OutletID:      outletID,
		Date:          r.Date,
		PartySize:     r.PartySize,
		PreferredTime: r.PreferredTime,
		PrivateRoom:   r.PrivateRoom,
	}
	if r.Offering != nil && strings.TrimSpace(*r.Offering) != "" {
		p.Offering = &queries.OfferingSpec{Name: strings.TrimSpace(*r.Offering)}
	}
	return p
}

type SearchRequest struct {
	// OutletIDs is a comma-separated uuid list.
	OutletIDs     string  `form:"outlet_ids" binding:"required"`
	Date          string  `form:"date" binding:"required"`
	PartySize     int     `form:"party_size" binding:"required,min=1"`
	PreferredTime *string `form:"preferred_time"`
}

func (r SearchRequest) ParseOutletIDs() ([]uuid.UUID, error) {
	parts := strings.Split(r.OutletIDs, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
