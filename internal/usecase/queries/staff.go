package queries

import "github.com/google/uuid"

// StaffView is the authenticated-staff read model. PasswordHash stays
// internal to the login flow and is never serialized.
type StaffView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	OutletID     uuid.UUID `json:"outlet_id"`
	Role         string    `json:"role"`
}
