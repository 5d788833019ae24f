package readstore

import (
	"context"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"
)

type StaffReadStore struct {
	db db.DBTX
}

func NewStaffReadStore(dbtx db.DBTX) *StaffReadStore {
	return &StaffReadStore{db: dbtx}
}

const staffByEmailQuery = `
SELECT id, email, password_hash, outlet_id, role
FROM staff
WHERE email = $1`

func (s *StaffReadStore) FindByEmail(ctx context.Context, email string) (*queries.StaffView, error) {
	var v queries.StaffView
	row := s.db.QueryRow(ctx, staffByEmailQuery, email)
	if err := row.Scan(&v.ID, &v.Email, &v.PasswordHash, &v.OutletID, &v.Role); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff by email", err)
	}
	return &v, nil
}
