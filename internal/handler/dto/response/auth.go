package response

import (
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token string        `json:"token"`
	Staff StaffResponse `json:"staff"`
}

type StaffResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	OutletID uuid.UUID `json:"outletId"`
	Role     string    `json:"role"`
}

func FromStaffView(token string, v *queries.StaffView) LoginResponse {
	return LoginResponse{
		Token: token,
		Staff: StaffResponse{
			ID:       v.ID,
			Email:    v.Email,
			OutletID: v.OutletID,
			Role:     v.Role,
		},
	}
}
