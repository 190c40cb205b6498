package handlers

import (
	"context"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// CatalogFacade exposes catalog reads of a pharmacy.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, code string) (*model.Product, error)
}

// OrderFacade encapsulates pharmacy order operations exposed via HTTP.
type OrderFacade interface {
	CommitOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
}

// HealthFacade reports whether the backing storage answers.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// PharmacyFacade aggregates the operations served by a pharmacy instance.
type PharmacyFacade interface {
	CatalogFacade
	OrderFacade
	HealthFacade
}

// OrchestratorFacade aggregates the operations served by the orchestrator.
type OrchestratorFacade interface {
	RouteOrder(ctx context.Context, req model.RoutedOrder) (*model.OrderRecord, error)
	Record(ctx context.Context, externalID string) (*model.OrderRecord, error)
	Records(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error)
	AllProducts(ctx context.Context, filter model.CatalogFilter) (*model.CatalogPage, error)
	Pharmacies() []model.Pharmacy
	HealthFacade
}
