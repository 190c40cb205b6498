package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
)

// LedgerStub records ledger calls and delegates to Fn overrides or to Next.
type LedgerStub struct {
	DecrementFn func(context.Context, string, int64) (bool, error)
	IncrementFn func(context.Context, string, int64) error
	AvailableFn func(context.Context, string) (int64, error)
	Next        repository.StockLedger

	mu    sync.Mutex
	Calls []string
}

func (s *LedgerStub) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (s *LedgerStub) CallLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Calls...)
}

// Decrement records the call and applies the configured behaviour.
func (s *LedgerStub) Decrement(ctx context.Context, code string, qty int64) (bool, error) {
	s.record(fmt.Sprintf("dec %s %d", code, qty))
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, code, qty)
	}
	if s.Next != nil {
		return s.Next.Decrement(ctx, code, qty)
	}
	return true, nil
}

// Increment records the call and applies the configured behaviour.
func (s *LedgerStub) Increment(ctx context.Context, code string, qty int64) error {
	s.record(fmt.Sprintf("inc %s %d", code, qty))
	if s.IncrementFn != nil {
		return s.IncrementFn(ctx, code, qty)
	}
	if s.Next != nil {
		return s.Next.Increment(ctx, code, qty)
	}
	return nil
}

// Available records the call and applies the configured behaviour.
func (s *LedgerStub) Available(ctx context.Context, code string) (int64, error) {
	s.record("available " + code)
	if s.AvailableFn != nil {
		return s.AvailableFn(ctx, code)
	}
	if s.Next != nil {
		return s.Next.Available(ctx, code)
	}
	return 0, nil
}

// ProductRepositoryStub allows tests to customize catalog behaviour.
type ProductRepositoryStub struct {
	Products      map[string]model.Product
	FindByCodesFn func(context.Context, []string) (map[string]model.Product, error)
	ListFn        func(context.Context, model.ProductFilter) ([]model.Product, error)
	UpsertFn      func(context.Context, []model.Product) error
}

// FindByCodes returns the configured products that match codes.
func (s *ProductRepositoryStub) FindByCodes(ctx context.Context, codes []string) (map[string]model.Product, error) {
	if s.FindByCodesFn != nil {
		return s.FindByCodesFn(ctx, codes)
	}
	found := make(map[string]model.Product)
	for _, code := range codes {
		if p, ok := s.Products[code]; ok {
			found[code] = p
		}
	}
	return found, nil
}

// Get returns a configured product or not found.
func (s *ProductRepositoryStub) Get(_ context.Context, code string) (*model.Product, error) {
	if p, ok := s.Products[code]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to ListFn or returns every configured product.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	result := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		result = append(result, p)
	}
	return result, nil
}

// Upsert delegates to UpsertFn or stores products in the map.
func (s *ProductRepositoryStub) Upsert(ctx context.Context, products []model.Product) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, products)
	}
	if s.Products == nil {
		s.Products = make(map[string]model.Product)
	}
	for _, p := range products {
		s.Products[p.Code] = p
	}
	return nil
}

// OrderRepositoryStub allows tests to customize order persistence.
type OrderRepositoryStub struct {
	InsertFn  func(context.Context, *model.Order) error
	GetByIDFn func(context.Context, string) (*model.Order, error)
	ListFn    func(context.Context, model.OrderFilter) ([]model.Order, error)

	mu       sync.Mutex
	Inserted []model.Order
}

// Insert records the order unless InsertFn fails.
func (s *OrderRepositoryStub) Insert(ctx context.Context, order *model.Order) error {
	if s.InsertFn != nil {
		if err := s.InsertFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inserted = append(s.Inserted, *order)
	return nil
}

// GetByID delegates to GetByIDFn or searches inserted orders.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Inserted {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to ListFn or returns inserted orders.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.Inserted...), nil
}

// RecordRepositoryStub allows tests to customize orchestrator record persistence.
type RecordRepositoryStub struct {
	InsertFn func(context.Context, *model.OrderRecord) error
	ListFn   func(context.Context, model.RecordFilter) ([]model.OrderRecord, error)

	mu       sync.Mutex
	Inserted []model.OrderRecord
}

// Insert records the record unless InsertFn fails.
func (s *RecordRepositoryStub) Insert(ctx context.Context, record *model.OrderRecord) error {
	if s.InsertFn != nil {
		if err := s.InsertFn(ctx, record); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inserted = append(s.Inserted, *record)
	return nil
}

// GetByExternalID searches inserted records.
func (s *RecordRepositoryStub) GetByExternalID(_ context.Context, externalID string) (*model.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.Inserted {
		if r.ExternalOrderID == externalID {
			return &r, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to ListFn or returns inserted records.
func (s *RecordRepositoryStub) List(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderRecord(nil), s.Inserted...), nil
}
