package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// PharmacyFacadeStub provides controllable behaviour for pharmacy endpoints.
type PharmacyFacadeStub struct {
	ProductsFn func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
	CommitFn   func(context.Context, model.OrderRequest) (*model.Order, error)
	OrderFn    func(context.Context, string) (*model.Order, error)
	OrdersFn   func(context.Context, model.OrderFilter) ([]model.Order, error)
	HealthErr  error

	mu      sync.Mutex
	Commits []model.OrderRequest
}

// Products delegates to ProductsFn or returns no products.
func (s *PharmacyFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return nil, nil
}

// Product delegates to ProductFn or reports the code as missing.
func (s *PharmacyFacadeStub) Product(ctx context.Context, code string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, code)
	}
	return nil, domainErrors.ErrNotFound
}

// CommitOrder records the request and delegates to CommitFn.
func (s *PharmacyFacadeStub) CommitOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	s.mu.Lock()
	s.Commits = append(s.Commits, req)
	s.mu.Unlock()
	if s.CommitFn != nil {
		return s.CommitFn(ctx, req)
	}
	return &model.Order{ID: "order-1", DiscountPct: req.DiscountPct, ExternalRef: req.ExternalRef, ClientID: req.ClientID}, nil
}

// Order delegates to OrderFn or reports the order as missing.
func (s *PharmacyFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// Orders delegates to OrdersFn or returns no orders.
func (s *PharmacyFacadeStub) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return nil, nil
}

// HealthCheck returns HealthErr.
func (s *PharmacyFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

// OrchestratorFacadeStub provides controllable behaviour for orchestrator endpoints.
type OrchestratorFacadeStub struct {
	RouteFn       func(context.Context, model.RoutedOrder) (*model.OrderRecord, error)
	RecordFn      func(context.Context, string) (*model.OrderRecord, error)
	RecordsFn     func(context.Context, model.RecordFilter) ([]model.OrderRecord, error)
	AllProductsFn func(context.Context, model.CatalogFilter) (*model.CatalogPage, error)
	Registry      []model.Pharmacy
	HealthErr     error
}

// RouteOrder delegates to RouteFn or echoes the request as a record.
func (s *OrchestratorFacadeStub) RouteOrder(ctx context.Context, req model.RoutedOrder) (*model.OrderRecord, error) {
	if s.RouteFn != nil {
		return s.RouteFn(ctx, req)
	}
	return &model.OrderRecord{
		ExternalOrderID: req.ExternalRef,
		PharmacyOrderID: "order-1",
		PharmacyID:      req.PharmacyID,
		ClientID:        req.ClientID,
		DiscountPct:     req.DiscountPct,
		Source:          model.RecordSource,
	}, nil
}

// Record delegates to RecordFn or reports the record as missing.
func (s *OrchestratorFacadeStub) Record(ctx context.Context, externalID string) (*model.OrderRecord, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, externalID)
	}
	return nil, domainErrors.ErrNotFound
}

// Records delegates to RecordsFn or returns no records.
func (s *OrchestratorFacadeStub) Records(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	if s.RecordsFn != nil {
		return s.RecordsFn(ctx, filter)
	}
	return nil, nil
}

// AllProducts delegates to AllProductsFn or returns an empty page.
func (s *OrchestratorFacadeStub) AllProducts(ctx context.Context, filter model.CatalogFilter) (*model.CatalogPage, error) {
	if s.AllProductsFn != nil {
		return s.AllProductsFn(ctx, filter)
	}
	return &model.CatalogPage{Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Pharmacies returns Registry.
func (s *OrchestratorFacadeStub) Pharmacies() []model.Pharmacy {
	return s.Registry
}

// HealthCheck returns HealthErr.
func (s *OrchestratorFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

// TokenVerifierStub accepts exactly Token when Token is set.
type TokenVerifierStub struct {
	Token string
	Err   error
}

// Enabled reports whether a token is configured.
func (s TokenVerifierStub) Enabled() bool {
	return s.Token != ""
}

// Verify compares token with Token and returns Err on mismatch.
func (s TokenVerifierStub) Verify(token string) error {
	if token == s.Token {
		return nil
	}
	return s.Err
}
