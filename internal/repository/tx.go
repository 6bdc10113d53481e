package repository

import "context"

// Tx is the minimal transaction handle the repository helpers need.
// pgx.Tx satisfies it.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
