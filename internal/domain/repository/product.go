package repository

import (
	"context"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// ProductRepository describes catalog reads and seeding.
type ProductRepository interface {
	FindByCodes(ctx context.Context, codes []string) (map[string]model.Product, error)
	Get(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Upsert(ctx context.Context, products []model.Product) error
}
