package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx. The
// repositories in the subpackages run every statement through it, which
// is what lets TxManager redirect them into a transaction without the
// repositories knowing.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txCtxKey struct{}

// withTx stashes an open transaction in the context. Only TxManager
// calls this.
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// QuerierFromCtx resolves the active transaction if the caller started
// one via TxManager.RunInTx, otherwise falls back to the pool.
func QuerierFromCtx(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}
