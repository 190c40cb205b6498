package app

import (
	"context"
	"io"

	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/usecase"
)

// HealthChecker reports whether the backing storage answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PharmacyFacade exposes the use cases of one pharmacy to transports.
type PharmacyFacade struct {
	catalog *usecase.CatalogUseCase
	orders  *usecase.OrderUseCase
	health  HealthChecker
}

func NewPharmacyFacade(catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, health HealthChecker) *PharmacyFacade {
	return &PharmacyFacade{catalog: catalog, orders: orders, health: health}
}

func (f *PharmacyFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *PharmacyFacade) Product(ctx context.Context, code string) (*model.Product, error) {
	return f.catalog.Get(ctx, code)
}

func (f *PharmacyFacade) CommitOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	return f.orders.Commit(ctx, req)
}

func (f *PharmacyFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *PharmacyFacade) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *PharmacyFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

// SeedCatalog loads a JSON product array from r and upserts it. It returns the
// number of products written.
func (f *PharmacyFacade) SeedCatalog(ctx context.Context, r io.Reader) (int, error) {
	products, err := usecase.DecodeSeed(r)
	if err != nil {
		return 0, err
	}
	if err := f.catalog.Seed(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// OrchestratorFacade exposes the routing use case to transports.
type OrchestratorFacade struct {
	routing *usecase.RoutingUseCase
	health  HealthChecker
}

func NewOrchestratorFacade(routing *usecase.RoutingUseCase, health HealthChecker) *OrchestratorFacade {
	return &OrchestratorFacade{routing: routing, health: health}
}

func (f *OrchestratorFacade) RouteOrder(ctx context.Context, req model.RoutedOrder) (*model.OrderRecord, error) {
	return f.routing.RouteOrder(ctx, req)
}

func (f *OrchestratorFacade) Record(ctx context.Context, externalID string) (*model.OrderRecord, error) {
	return f.routing.Record(ctx, externalID)
}

func (f *OrchestratorFacade) Records(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error) {
	return f.routing.Records(ctx, filter)
}

func (f *OrchestratorFacade) AllProducts(ctx context.Context, filter model.CatalogFilter) (*model.CatalogPage, error) {
	return f.routing.ListAllProducts(ctx, filter)
}

func (f *OrchestratorFacade) Pharmacies() []model.Pharmacy {
	return f.routing.Pharmacies()
}

func (f *OrchestratorFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
