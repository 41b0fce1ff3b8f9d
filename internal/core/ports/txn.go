package ports

import "context"

// TxnRunner groups persistence operations so they commit or roll back
// atomically. The context passed to fn carries the session; repositories
// called with it participate in the transaction. The underlying session is
// always released, on every exit path.
type TxnRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
