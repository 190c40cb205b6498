package usecase

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
)

// CatalogUseCase serves catalog reads and loads seed data.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns products matching filter.
func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

// Get returns a product by code.
func (u *CatalogUseCase) Get(ctx context.Context, code string) (*model.Product, error) {
	if !ValidateProductCode(code) {
		return nil, domainErrors.Validationf("product code %q must be %d digits", code, ProductCodeLength)
	}
	return u.products.Get(ctx, code)
}

// Seed inserts or refreshes products. Existing codes keep their identity.
func (u *CatalogUseCase) Seed(ctx context.Context, products []model.Product) error {
	for i, p := range products {
		if !ValidateProductCode(p.Code) {
			return domainErrors.Validationf("seed[%d]: product code %q must be %d digits", i, p.Code, ProductCodeLength)
		}
		if p.Stock < 0 {
			return domainErrors.Validationf("seed[%d]: stock must be >= 0", i)
		}
		if p.Price.IsNegative() {
			return domainErrors.Validationf("seed[%d]: price must be >= 0", i)
		}
	}
	return u.products.Upsert(ctx, products)
}

type seedEntry struct {
	Code         string          `json:"package_ndc_11"`
	Description  string          `json:"descripcion"`
	GenericName  string          `json:"generic_name"`
	Manufacturer string          `json:"manufacturer_name"`
	SellingSize  *float64        `json:"selling_size"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
}

// DecodeSeed reads a JSON array of catalog products.
func DecodeSeed(r io.Reader) ([]model.Product, error) {
	var entries []seedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, errors.Wrap(err, "decode catalog seed")
	}
	now := time.Now().UTC()
	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, model.Product{
			Code:         e.Code,
			Description:  e.Description,
			GenericName:  e.GenericName,
			Manufacturer: e.Manufacturer,
			SellingSize:  e.SellingSize,
			Price:        e.Price,
			Stock:        e.Stock,
			UpdatedAt:    now,
		})
	}
	return products, nil
}
