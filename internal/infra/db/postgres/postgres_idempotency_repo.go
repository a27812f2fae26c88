package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/ports/repository"
)

var _ repository.IdempotencyRepository = (*idempotencyRepo)(nil)

type idempotencyRepo struct{ pool *pgxpool.Pool }

func NewIdempotencyRepo(pool *pgxpool.Pool) *idempotencyRepo {
	return &idempotencyRepo{pool: pool}
}

// Schema:
//
//	CREATE TABLE webhook_events (
//	  event_id   TEXT PRIMARY KEY,
//	  applied_at TIMESTAMPTZ NOT NULL
//	);
//
// Claim relies on the primary key for its check-and-set: the insert either
// lands (claimed) or conflicts (someone else already applied the event).
// Concurrent claims for one id serialize on the unique index, so at most one
// caller ever sees claimed=true.
func (r *idempotencyRepo) Claim(ctx context.Context, tx repository.Tx, eventID string, at time.Time) (bool, error) {
	const q = `INSERT INTO webhook_events (event_id, applied_at) VALUES ($1,$2) ON CONFLICT (event_id) DO NOTHING;`
	tag, err := execSQL(ctx, r.pool, tx, q, eventID, at)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() == 1, nil
}
