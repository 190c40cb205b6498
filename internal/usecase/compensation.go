package usecase

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/polkiloo/pharmanet/internal/domain/repository"
)

// Compensation undoes one applied stock decrement.
type Compensation struct {
	Code     string
	Quantity int64
}

// CompensationLog is the ordered list of decrements applied so far by a commit.
type CompensationLog struct {
	entries []Compensation
}

// Record appends an applied decrement.
func (l *CompensationLog) Record(code string, qty int64) {
	l.entries = append(l.entries, Compensation{Code: code, Quantity: qty})
}

// Entries returns a copy of the applied decrements in application order.
func (l *CompensationLog) Entries() []Compensation {
	out := make([]Compensation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of applied decrements.
func (l *CompensationLog) Len() int { return len(l.entries) }

// Replay restores every recorded decrement in reverse order. A failing
// increment does not stop the replay; all failures are returned combined.
func (l *CompensationLog) Replay(ctx context.Context, ledger repository.StockLedger, logger *slog.Logger) error {
	var combined error
	for i := len(l.entries) - 1; i >= 0; i-- {
		c := l.entries[i]
		if err := ledger.Increment(ctx, c.Code, c.Quantity); err != nil {
			logger.Error("stock compensation failed",
				slog.String("code", c.Code),
				slog.Int64("quantity", c.Quantity),
				slog.String("error", err.Error()),
			)
			combined = errors.CombineErrors(combined, errors.Wrapf(err, "restore %s", c.Code))
		}
	}
	l.entries = l.entries[:0]
	return combined
}
