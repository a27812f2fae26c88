package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"subscription-billing/internal/domain"
	"subscription-billing/internal/domain/model"
	"subscription-billing/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

// Schema:
//
//	CREATE TABLE subscriptions (
//	  user_id                 TEXT PRIMARY KEY,
//	  status                  TEXT NOT NULL,
//	  plan                    TEXT NOT NULL,
//	  start_date              TIMESTAMPTZ NOT NULL,
//	  end_date                TIMESTAMPTZ NOT NULL,
//	  last_payment_date       TIMESTAMPTZ NOT NULL,
//	  last_payment_amount     BIGINT NOT NULL
//	);
func (r *subscriptionRepo) Upsert(ctx context.Context, tx repository.Tx, rec *model.SubscriptionRecord) error {
	// Merge semantics: only the listed columns are replaced on conflict.
	const q = `
INSERT INTO subscriptions (
  user_id, status, plan, start_date, end_date, last_payment_date, last_payment_amount
) VALUES (
  $1,$2,$3,$4,$5,$6,$7
) ON CONFLICT (user_id) DO UPDATE SET
  status=$2, plan=$3, start_date=$4, end_date=$5, last_payment_date=$6, last_payment_amount=$7;`

	_, err := execSQL(ctx, r.pool, tx, q,
		rec.UserID, rec.Status, rec.Plan, rec.StartDate, rec.EndDate, rec.LastPaymentDate, rec.LastPaymentAmount)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.SubscriptionRecord, error) {
	const q = `SELECT user_id, status, plan, start_date, end_date, last_payment_date, last_payment_amount FROM subscriptions WHERE user_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	rec := &model.SubscriptionRecord{}
	if err := row.Scan(&rec.UserID, &rec.Status, &rec.Plan, &rec.StartDate, &rec.EndDate, &rec.LastPaymentDate, &rec.LastPaymentAmount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return rec, nil
}
