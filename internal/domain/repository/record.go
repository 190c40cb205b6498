package repository

import (
	"context"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// RecordRepository persists the orchestrator's order records.
type RecordRepository interface {
	Insert(ctx context.Context, record *model.OrderRecord) error
	GetByExternalID(ctx context.Context, externalID string) (*model.OrderRecord, error)
	List(ctx context.Context, filter model.RecordFilter) ([]model.OrderRecord, error)
}
