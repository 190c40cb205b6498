package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/pkg/clock"
	"github.com/polkiloo/pharmanet/internal/storage/memory"
	"github.com/polkiloo/pharmanet/internal/test"
)

const (
	codeA = "00000000001"
	codeB = "00000000002"
	codeC = "00000000003"
)

var commitTime = time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type commitFixture struct {
	store  *memory.Storage
	ledger *test.LedgerStub
	orders *test.OrderRepositoryStub
	uc     *OrderUseCase
}

func newCommitFixture(t *testing.T, products ...model.Product) *commitFixture {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Products().Upsert(context.Background(), products))
	f := &commitFixture{
		store:  store,
		ledger: &test.LedgerStub{Next: store.Ledger()},
		orders: &test.OrderRepositoryStub{},
	}
	f.uc = NewOrderUseCase("farma_001", f.ledger, store.Products(), f.orders, clock.NewFixedClock(commitTime), discardLogger())
	f.uc.newID = func() string { return "order-1" }
	return f
}

func (f *commitFixture) stock(t *testing.T, code string) int64 {
	t.Helper()
	n, err := f.store.Ledger().Available(context.Background(), code)
	require.NoError(t, err)
	return n
}

func lines(pairs ...any) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.OrderLine{Code: pairs[i].(string), Quantity: int64(pairs[i+1].(int))})
	}
	return out
}

func TestCommitSingleLineScenario(t *testing.T) {
	f := newCommitFixture(t, model.Product{Code: codeA, Price: dec("10.00"), Stock: 5, Description: "Paracetamol"})

	order, err := f.uc.Commit(context.Background(), model.OrderRequest{
		Lines:       lines(codeA, 3),
		DiscountPct: decimal.NewFromInt(10),
		ExternalRef: "FAC-001-00001",
		ClientID:    "CLI-007",
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "farma_001", order.Tenant)
	assert.Equal(t, commitTime, order.ConfirmedAt)
	assert.Equal(t, "FAC-001-00001", order.ExternalRef)
	assert.Equal(t, "CLI-007", order.ClientID)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].LineTotal.Equal(dec("30.00")))
	assert.True(t, order.Subtotal.Equal(dec("30.00")))
	assert.True(t, order.Discount.Equal(dec("3.00")))
	assert.True(t, order.Total.Equal(dec("27.00")))
	assert.EqualValues(t, 2, f.stock(t, codeA))
	require.Len(t, f.orders.Inserted, 1)
}

func TestCommitRollsBackOnConflict(t *testing.T) {
	f := newCommitFixture(t,
		model.Product{Code: codeA, Price: dec("1"), Stock: 10},
		model.Product{Code: codeB, Price: dec("1"), Stock: 1},
		model.Product{Code: codeC, Price: dec("1"), Stock: 10},
	)

	_, err := f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 4, codeB, 2, codeC, 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrConflict))

	var conflict *domainErrors.StockConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, codeB, conflict.Code)
	assert.EqualValues(t, 2, conflict.Requested)
	assert.EqualValues(t, 1, conflict.Available)

	assert.EqualValues(t, 10, f.stock(t, codeA), "line 1 must be restored exactly")
	assert.EqualValues(t, 1, f.stock(t, codeB))
	assert.EqualValues(t, 10, f.stock(t, codeC), "line 3 must never be touched")
	assert.Empty(t, f.orders.Inserted)
	assert.Equal(t, []string{
		"dec " + codeA + " 4",
		"dec " + codeB + " 2",
		"available " + codeB,
		"inc " + codeA + " 4",
	}, f.ledger.CallLog())
}

func TestCommitRollbackRunsInReverseOrder(t *testing.T) {
	f := newCommitFixture(t,
		model.Product{Code: codeA, Price: dec("1"), Stock: 10},
		model.Product{Code: codeB, Price: dec("1"), Stock: 10},
		model.Product{Code: codeC, Price: dec("1"), Stock: 0},
	)

	_, err := f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 1, codeB, 2, codeC, 1)})
	require.Error(t, err)

	calls := f.ledger.CallLog()
	require.Len(t, calls, 6)
	assert.Equal(t, []string{"inc " + codeB + " 2", "inc " + codeA + " 1"}, calls[4:])
}

func TestCommitMissingProductsTouchesNoStock(t *testing.T) {
	f := newCommitFixture(t, model.Product{Code: codeA, Price: dec("1"), Stock: 10})

	_, err := f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 1, codeB, 1, codeC, 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))

	var missing *domainErrors.MissingProductsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{codeB, codeC}, missing.Codes)
	assert.Empty(t, f.ledger.CallLog())
}

func TestCommitValidationTouchesNoStock(t *testing.T) {
	f := newCommitFixture(t, model.Product{Code: codeA, Price: dec("1"), Stock: 10})

	for _, req := range []model.OrderRequest{
		{},
		{Lines: lines("123", 1)},
		{Lines: lines(codeA, 0)},
		{Lines: lines(codeA, 1), DiscountPct: decimal.NewFromInt(101)},
	} {
		_, err := f.uc.Commit(context.Background(), req)
		assert.True(t, errors.Is(err, domainErrors.ErrValidation), "request %+v: %v", req, err)
	}
	assert.Empty(t, f.ledger.CallLog())
}

func TestCommitPersistenceFailureRestoresStock(t *testing.T) {
	f := newCommitFixture(t,
		model.Product{Code: codeA, Price: dec("2.50"), Stock: 3},
		model.Product{Code: codeB, Price: dec("1.00"), Stock: 3},
	)
	f.orders.InsertFn = func(context.Context, *model.Order) error { return errors.New("disk full") }

	_, err := f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 3, codeB, 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrInternal))
	assert.EqualValues(t, 3, f.stock(t, codeA))
	assert.EqualValues(t, 3, f.stock(t, codeB))
}

func TestCommitStorageErrorDuringDecrementRestoresStock(t *testing.T) {
	f := newCommitFixture(t,
		model.Product{Code: codeA, Price: dec("1"), Stock: 3},
		model.Product{Code: codeB, Price: dec("1"), Stock: 3},
	)
	next := f.store.Ledger()
	f.ledger.DecrementFn = func(ctx context.Context, code string, qty int64) (bool, error) {
		if code == codeB {
			return false, errors.New("connection reset")
		}
		return next.Decrement(ctx, code, qty)
	}

	_, err := f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 2, codeB, 1)})
	assert.True(t, errors.Is(err, domainErrors.ErrInternal))
	assert.EqualValues(t, 3, f.stock(t, codeA))
}

func TestCommitCompensatesAfterRequestCancellation(t *testing.T) {
	f := newCommitFixture(t,
		model.Product{Code: codeA, Price: dec("1"), Stock: 3},
		model.Product{Code: codeB, Price: dec("1"), Stock: 0},
	)
	ctx, cancel := context.WithCancel(context.Background())
	next := f.store.Ledger()
	f.ledger.DecrementFn = func(c context.Context, code string, qty int64) (bool, error) {
		ok, err := next.Decrement(c, code, qty)
		if code == codeA {
			cancel()
		}
		return ok, err
	}
	f.ledger.IncrementFn = func(c context.Context, code string, qty int64) error {
		if c.Err() != nil {
			return c.Err()
		}
		return next.Increment(c, code, qty)
	}

	_, err := f.uc.Commit(ctx, model.OrderRequest{Lines: lines(codeA, 2, codeB, 1)})
	require.Error(t, err)
	assert.EqualValues(t, 3, f.stock(t, codeA))
}

func TestCommitConcurrentOrdersForSameProduct(t *testing.T) {
	f := newCommitFixture(t, model.Product{Code: codeA, Price: dec("10.00"), Stock: 5})
	f.uc.newID = func() string { return time.Now().String() }

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.uc.Commit(context.Background(), model.OrderRequest{Lines: lines(codeA, 3)})
		}()
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		var conflict *domainErrors.StockConflictError
		switch {
		case err == nil:
			succeeded++
		case errors.As(err, &conflict):
			conflicted++
			assert.Contains(t, []int64{2, 5}, conflict.Available)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.EqualValues(t, 2, f.stock(t, codeA))
}

func TestCommitConcurrentLoadProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stockA := rapid.Int64Range(0, 20).Draw(rt, "stockA")
		stockB := rapid.Int64Range(0, 20).Draw(rt, "stockB")
		store := memory.New()
		_ = store.Products().Upsert(context.Background(), []model.Product{
			{Code: codeA, Price: decimal.NewFromInt(1), Stock: stockA},
			{Code: codeB, Price: decimal.NewFromInt(1), Stock: stockB},
		})
		orders := &test.OrderRepositoryStub{}
		uc := NewOrderUseCase("p", store.Ledger(), store.Products(), orders, clock.NewRealClock(), discardLogger())

		reqs := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) model.OrderRequest {
			return model.OrderRequest{Lines: []model.OrderLine{
				{Code: codeA, Quantity: rapid.Int64Range(1, 5).Draw(t, "qa")},
				{Code: codeB, Quantity: rapid.Int64Range(1, 5).Draw(t, "qb")},
			}}
		}), 1, 12).Draw(rt, "orders")

		var wg sync.WaitGroup
		for _, req := range reqs {
			wg.Add(1)
			go func(req model.OrderRequest) {
				defer wg.Done()
				_, _ = uc.Commit(context.Background(), req)
			}(req)
		}
		wg.Wait()

		var soldA, soldB int64
		for _, o := range orders.Inserted {
			soldA += o.Items[0].Quantity
			soldB += o.Items[1].Quantity
		}
		leftA, _ := store.Ledger().Available(context.Background(), codeA)
		leftB, _ := store.Ledger().Available(context.Background(), codeB)
		if leftA < 0 || leftB < 0 {
			rt.Fatalf("negative stock: a=%d b=%d", leftA, leftB)
		}
		if leftA+soldA != stockA || leftB+soldB != stockB {
			rt.Fatalf("stock not conserved: a=%d+%d/%d b=%d+%d/%d", leftA, soldA, stockA, leftB, soldB, stockB)
		}
	})
}

func TestOrderQueries(t *testing.T) {
	f := newCommitFixture(t)
	f.orders.ListFn = func(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
		assert.Equal(t, defaultOrdersLimit, filter.Limit)
		assert.Equal(t, "CLI-001", filter.ClientID)
		return []model.Order{{ID: "x"}}, nil
	}

	orders, err := f.uc.List(context.Background(), model.OrderFilter{ClientID: "CLI-001"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = f.uc.List(context.Background(), model.OrderFilter{Limit: 201})
	assert.True(t, errors.Is(err, domainErrors.ErrValidation))
	_, err = f.uc.List(context.Background(), model.OrderFilter{Offset: -1})
	assert.True(t, errors.Is(err, domainErrors.ErrValidation))

	_, err = f.uc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
}
