package pharmacy

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// Registry routes calls to the pharmacies of a static registry.
type Registry struct {
	pharmacies []model.Pharmacy
	clients    map[string]Client
}

// NewRegistry builds one HTTP client per pharmacy.
func NewRegistry(pharmacies []model.Pharmacy, timeout time.Duration, token string, logger *slog.Logger) (*Registry, error) {
	clients := make(map[string]Client, len(pharmacies))
	for _, ph := range pharmacies {
		client, err := NewHTTPClient(ph.ID, ph.BaseURL, timeout, token, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "pharmacy %s", ph.ID)
		}
		clients[ph.ID] = client
	}
	return newRegistry(pharmacies, clients), nil
}

func newRegistry(pharmacies []model.Pharmacy, clients map[string]Client) *Registry {
	return &Registry{
		pharmacies: append([]model.Pharmacy(nil), pharmacies...),
		clients:    clients,
	}
}

// Pharmacies returns the registry in its fixed order.
func (r *Registry) Pharmacies() []model.Pharmacy {
	return append([]model.Pharmacy(nil), r.pharmacies...)
}

// Lookup finds a pharmacy by id.
func (r *Registry) Lookup(id string) (model.Pharmacy, bool) {
	for _, ph := range r.pharmacies {
		if ph.ID == id {
			return ph, true
		}
	}
	return model.Pharmacy{}, false
}

// CommitOrder submits req to the pharmacy id.
func (r *Registry) CommitOrder(ctx context.Context, id string, req model.OrderRequest) (*model.Order, error) {
	client, err := r.client(id)
	if err != nil {
		return nil, err
	}
	return client.CommitOrder(ctx, req)
}

// ListProducts reads the catalog of the pharmacy id.
func (r *Registry) ListProducts(ctx context.Context, id string) ([]model.Product, error) {
	client, err := r.client(id)
	if err != nil {
		return nil, err
	}
	return client.ListProducts(ctx)
}

func (r *Registry) client(id string) (Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, errors.Mark(errors.Newf("pharmacy %q unknown", id), domainErrors.ErrNotFound)
	}
	return client, nil
}
