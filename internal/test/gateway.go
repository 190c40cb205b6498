package test

import (
	"context"
	"sync/atomic"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// PharmacyGatewayStub serves a fixed registry and configurable pharmacy calls.
type PharmacyGatewayStub struct {
	Registry       []model.Pharmacy
	CommitOrderFn  func(context.Context, string, model.OrderRequest) (*model.Order, error)
	ListProductsFn func(context.Context, string) ([]model.Product, error)

	CommitCalls atomic.Int64
}

// Pharmacies returns the configured registry.
func (s *PharmacyGatewayStub) Pharmacies() []model.Pharmacy {
	return append([]model.Pharmacy(nil), s.Registry...)
}

// Lookup finds id in the configured registry.
func (s *PharmacyGatewayStub) Lookup(id string) (model.Pharmacy, bool) {
	for _, ph := range s.Registry {
		if ph.ID == id {
			return ph, true
		}
	}
	return model.Pharmacy{}, false
}

// CommitOrder counts the call and delegates to CommitOrderFn.
func (s *PharmacyGatewayStub) CommitOrder(ctx context.Context, pharmacyID string, req model.OrderRequest) (*model.Order, error) {
	s.CommitCalls.Add(1)
	if s.CommitOrderFn != nil {
		return s.CommitOrderFn(ctx, pharmacyID, req)
	}
	return &model.Order{ID: "order-1", Tenant: pharmacyID, DiscountPct: req.DiscountPct}, nil
}

// ListProducts delegates to ListProductsFn.
func (s *PharmacyGatewayStub) ListProducts(ctx context.Context, pharmacyID string) ([]model.Product, error) {
	if s.ListProductsFn != nil {
		return s.ListProductsFn(ctx, pharmacyID)
	}
	return nil, nil
}
