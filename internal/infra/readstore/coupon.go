package readstore

import (
	"context"
	"time"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"

	"github.com/google/uuid"
)

// CouponReadStore resolves which discount tags decorate each slot.
// Coupons can narrow themselves by weekday, a time band, and a minimum
// party size; a NULL column means "any".
type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

const couponsForDayQuery = `
SELECT tag, valid_from_time, valid_to_time
FROM coupons
WHERE outlet_id = $1
  AND active
  AND (weekday IS NULL OR weekday = $2)
  AND (min_party_size IS NULL OR min_party_size <= $3)`

func (s *CouponReadStore) DiscountTags(ctx context.Context, outletID uuid.UUID, date time.Time, partySize int, slotLabels []string) (map[string][]string, error) {
	rows, err := s.db.Query(ctx, couponsForDayQuery, outletID, int16(date.Weekday()), partySize)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coupons", err)
	}
	defer rows.Close()

	type band struct {
		tag      string
		from, to *string
	}
	var bands []band
	for rows.Next() {
		var b band
		if err := rows.Scan(&b.tag, &b.from, &b.to); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon row", err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coupon rows", err)
	}
	if len(bands) == 0 {
		return nil, nil
	}

	// Slot labels are zero-padded "HH:mm", so string order is time order.
	tags := make(map[string][]string)
	for _, label := range slotLabels {
		for _, b := range bands {
			if b.from != nil && label < *b.from {
				continue
			}
			if b.to != nil && label >= *b.to {
				continue
			}
			tags[label] = append(tags[label], b.tag)
		}
	}
	return tags, nil
}
