package repository

import "context"

// StockLedger is the authoritative per-pharmacy stock store.
type StockLedger interface {
	// Decrement subtracts qty from the product stock only if the stock covers it.
	// The check and the update happen as one atomic step. applied is false when
	// the stock was insufficient or the product is absent.
	Decrement(ctx context.Context, code string, qty int64) (applied bool, err error)
	// Increment adds qty back to the product stock.
	Increment(ctx context.Context, code string, qty int64) error
	// Available returns the current stock, zero for unknown products.
	Available(ctx context.Context, code string) (int64, error)
}
