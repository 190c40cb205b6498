package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
	"github.com/polkiloo/pharmanet/internal/storage/memory"
	"github.com/polkiloo/pharmanet/internal/storage/postgres"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOpenMemoryBackends(t *testing.T) {
	pharmacy, err := OpenPharmacy(context.Background(), config.StorageMemory, "", discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, pharmacy)
	assert.NoError(t, pharmacy.HealthCheck(context.Background()))

	orchestrator, err := OpenOrchestrator(context.Background(), config.StorageMemory, "", discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, orchestrator.Records())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := OpenPharmacy(context.Background(), "redis", "", discardLogger())
	assert.Error(t, err)
	_, err = OpenOrchestrator(context.Background(), "redis", "", discardLogger())
	assert.Error(t, err)
}

func TestOpenPostgresPassesSchema(t *testing.T) {
	original := openPostgres
	t.Cleanup(func() { openPostgres = original })

	var schemas [][]string
	openPostgres = func(_ context.Context, dsn string, schema []string, _ *slog.Logger) (*postgres.Storage, error) {
		assert.Equal(t, "postgres://db", dsn)
		schemas = append(schemas, schema)
		return nil, errors.New("connect refused")
	}

	backend, err := OpenPharmacy(context.Background(), config.StoragePostgres, "postgres://db", discardLogger())
	require.Error(t, err)
	assert.Nil(t, backend)

	orchestrator, err := OpenOrchestrator(context.Background(), config.StoragePostgres, "postgres://db", discardLogger())
	require.Error(t, err)
	assert.Nil(t, orchestrator)

	require.Len(t, schemas, 2)
	assert.Equal(t, postgres.PharmacySchema, schemas[0])
	assert.Equal(t, postgres.OrchestratorSchema, schemas[1])
}

func TestPharmacyModuleProvidesRepositories(t *testing.T) {
	var (
		ledger   repository.StockLedger
		products repository.ProductRepository
		orders   repository.OrderRepository
	)
	app := fxtest.New(t,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(&config.Pharmacy{Storage: config.StorageMemory}),
		fx.Supply(discardLogger()),
		PharmacyModule,
		fx.Populate(&ledger, &products, &orders),
	)
	app.RequireStart().RequireStop()

	assert.NotNil(t, ledger)
	assert.NotNil(t, products)
	assert.NotNil(t, orders)
}

func TestOrchestratorModuleProvidesRecords(t *testing.T) {
	var records repository.RecordRepository
	app := fxtest.New(t,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(&config.Orchestrator{Storage: config.StorageMemory}),
		fx.Supply(discardLogger()),
		OrchestratorModule,
		fx.Populate(&records),
	)
	app.RequireStart().RequireStop()

	assert.NotNil(t, records)
}

type closeRecorder struct {
	closed bool
}

func (c *closeRecorder) Close() { c.closed = true }

func TestRegisterLifecycleClosesBackend(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	backend := &closeRecorder{}
	registerLifecycle(lc, backend)

	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))
	assert.True(t, backend.closed)
}
