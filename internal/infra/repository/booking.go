package repository

import (
	"context"
	"time"

	"tablebook/internal/domain/seating"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

// BookingRepository persists table assignments. Conflict safety comes
// from locking the parent table rows in a stable order before the
// overlap re-check, so two writers racing for the same tables serialize
// instead of both inserting.
type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const lockTablesQuery = `
SELECT id
FROM outlet_tables
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

const conflictCheckQuery = `
SELECT b.id
FROM table_bookings b
WHERE b.table_id = ANY($1)
  AND b.status IN ('BOOKED', 'CONFIRMED')
  AND b.starts_at < $3
  AND b.ends_at > $2
LIMIT 1`

const insertBookingQuery = `
INSERT INTO table_bookings (id, table_id, invoice_id, starts_at, ends_at, party_size, status)
VALUES ($1, $2, $3, $4, $5, $6, 'BOOKED')`

func (r *BookingRepository) InsertAssignment(ctx context.Context, tx db.DBTX, a *seating.Assignment, invoiceID uuid.UUID, partySize int, start, end time.Time) ([]uuid.UUID, error) {
	tableIDs := a.TableIDs()

	rows, err := tx.Query(ctx, lockTablesQuery, tableIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock tables", err)
	}
	locked := 0
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, infra.WrapRepoErr("failed to scan locked table row", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked table rows", err)
	}
	if locked != len(tableIDs) {
		return nil, infra.WrapRepoErr("assigned table no longer exists", nil, infra.KindNotFound)
	}

	var conflictID uuid.UUID
	err = tx.QueryRow(ctx, conflictCheckQuery, tableIDs, start, end).Scan(&conflictID)
	if err == nil {
		return nil, infra.WrapRepoErr("table already booked for interval", nil, infra.KindConflict)
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to re-check booking conflicts", err)
	}

	bookingIDs := make([]uuid.UUID, len(tableIDs))
	for i, tableID := range tableIDs {
		bookingIDs[i] = uuid.New()
		if _, err := tx.Exec(ctx, insertBookingQuery, bookingIDs[i], tableID, invoiceID, start, end, partySize); err != nil {
			return nil, infra.WrapRepoErr("failed to insert booking", err)
		}
	}
	return bookingIDs, nil
}

const invoiceStateQuery = `
SELECT t.outlet_id, b.status, b.starts_at
FROM table_bookings b
JOIN outlet_tables t ON t.id = b.table_id
WHERE b.invoice_id = $1
ORDER BY b.id
LIMIT 1
FOR UPDATE OF b`

const updateInvoiceStatusQuery = `
UPDATE table_bookings
SET status = $2
WHERE invoice_id = $1`

// InvoiceState locks and returns one booking row of the invoice. Rows
// sharing an invoice id always carry the same status and interval, so
// one row is enough to validate a transition.
func (r *BookingRepository) InvoiceState(ctx context.Context, tx db.DBTX, invoiceID uuid.UUID) (*commands.InvoiceState, error) {
	var st commands.InvoiceState
	err := tx.QueryRow(ctx, invoiceStateQuery, invoiceID).Scan(&st.OutletID, &st.Status, &st.StartsAt)
	if pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("invoice has no bookings", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read invoice state", err)
	}
	return &st, nil
}

func (r *BookingRepository) UpdateInvoiceStatus(ctx context.Context, tx db.DBTX, invoiceID uuid.UUID, next seating.BookingStatus) error {
	tag, err := tx.Exec(ctx, updateInvoiceStatusQuery, invoiceID, string(next))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("invoice has no bookings", nil, infra.KindNotFound)
	}
	return nil
}
