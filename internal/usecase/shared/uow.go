package shared

import (
	"context"

	"tablebook/internal/infra/db"
)

// UnitOfWork scopes a function to one database transaction. The
// implementation owns begin/commit/rollback and serialization retries;
// callers only see the bound DBTX.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}
