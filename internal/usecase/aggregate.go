package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
)

const (
	defaultCatalogLimit = 200
	maxCatalogLimit     = 5000
)

// ListAllProducts reads every selected pharmacy catalog concurrently and pages
// over the combined result. A pharmacy that fails or times out contributes
// nothing; the call itself only fails on invalid paging.
func (u *RoutingUseCase) ListAllProducts(ctx context.Context, filter model.CatalogFilter) (*model.CatalogPage, error) {
	limit, err := normalizeLimit(filter.Limit, defaultCatalogLimit, maxCatalogLimit)
	if err != nil {
		return nil, err
	}
	if filter.Offset < 0 {
		return nil, domainErrors.Validationf("offset must be >= 0")
	}

	targets := u.gateway.Pharmacies()
	if filter.PharmacyID != "" {
		targets = selectPharmacy(targets, filter.PharmacyID)
	}

	parts := make([][]model.CatalogItem, len(targets))
	var g errgroup.Group
	for i, ph := range targets {
		g.Go(func() error {
			products, err := u.gateway.ListProducts(ctx, ph.ID)
			if err != nil {
				u.logger.Warn("pharmacy catalog unavailable", slog.String("pharmacy_id", ph.ID), slog.String("error", err.Error()))
				return nil
			}
			items := make([]model.CatalogItem, 0, len(products))
			for _, p := range products {
				if filter.InStockOnly && p.Stock <= 0 {
					continue
				}
				items = append(items, model.CatalogItem{PharmacyID: ph.ID, Product: p})
			}
			parts[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var all []model.CatalogItem
	for _, part := range parts {
		all = append(all, part...)
	}

	page := &model.CatalogPage{Total: len(all), Limit: limit, Offset: filter.Offset, Items: []model.CatalogItem{}}
	if filter.Offset < len(all) {
		end := min(filter.Offset+limit, len(all))
		page.Items = all[filter.Offset:end]
	}
	return page, nil
}

func selectPharmacy(all []model.Pharmacy, id string) []model.Pharmacy {
	for _, ph := range all {
		if ph.ID == id {
			return []model.Pharmacy{ph}
		}
	}
	return nil
}
