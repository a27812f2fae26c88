package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle passed through use cases to
// repositories. The concrete type is infra-defined (pgx.Tx for Postgres);
// repositories must accept nil and fall back to their non-transactional path.
type Tx interface{}

// TransactionManager runs fn inside a single database transaction, handing it
// the tx handle to forward to repository calls. If fn returns an error the
// transaction is rolled back, otherwise committed. Keeping the handle opaque
// stops transaction types from leaking into use-case signatures.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
