// Package storage selects and wires the persistence backend of a service.
package storage

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
	"github.com/polkiloo/pharmanet/internal/storage/memory"
	"github.com/polkiloo/pharmanet/internal/storage/postgres"
)

// PharmacyBackend holds the catalog, stock ledger and order journal of one pharmacy.
type PharmacyBackend interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}

// OrchestratorBackend holds the network-wide order records.
type OrchestratorBackend interface {
	Records() repository.RecordRepository
	HealthCheck(ctx context.Context) error
	Close()
}

var openPostgres = func(ctx context.Context, dsn string, schema []string, logger *slog.Logger) (*postgres.Storage, error) {
	return postgres.New(ctx, dsn, schema, logger)
}

// OpenPharmacy opens the backend named by kind.
func OpenPharmacy(ctx context.Context, kind, dsn string, logger *slog.Logger) (PharmacyBackend, error) {
	switch kind {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		st, err := openPostgres(ctx, dsn, postgres.PharmacySchema, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, errors.Newf("unknown storage %q", kind)
	}
}

// OpenOrchestrator opens the record backend named by kind.
func OpenOrchestrator(ctx context.Context, kind, dsn string, logger *slog.Logger) (OrchestratorBackend, error) {
	switch kind {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		st, err := openPostgres(ctx, dsn, postgres.OrchestratorSchema, logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, errors.Newf("unknown storage %q", kind)
	}
}
