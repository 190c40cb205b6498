package repository

import (
	"context"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// OrderRepository persists committed pharmacy orders. Orders are append-only.
type OrderRepository interface {
	Insert(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
}
