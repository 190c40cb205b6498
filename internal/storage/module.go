package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/domain/repository"
)

// PharmacyModule wires the pharmacy backend and its repositories.
var PharmacyModule = fx.Options(
	fx.Provide(newPharmacyBackend),
	fx.Provide(
		func(b PharmacyBackend) repository.StockLedger { return b.Ledger() },
		func(b PharmacyBackend) repository.ProductRepository { return b.Products() },
		func(b PharmacyBackend) repository.OrderRepository { return b.Orders() },
	),
	fx.Invoke(registerLifecycle[PharmacyBackend]),
)

// OrchestratorModule wires the orchestrator record backend.
var OrchestratorModule = fx.Options(
	fx.Provide(newOrchestratorBackend),
	fx.Provide(func(b OrchestratorBackend) repository.RecordRepository { return b.Records() }),
	fx.Invoke(registerLifecycle[OrchestratorBackend]),
)

type pharmacyParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Pharmacy
	Logger *slog.Logger
}

func newPharmacyBackend(p pharmacyParams) (PharmacyBackend, error) {
	return OpenPharmacy(p.Ctx, p.Config.Storage, p.Config.DatabaseURI, p.Logger)
}

type orchestratorParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Orchestrator
	Logger *slog.Logger
}

func newOrchestratorBackend(p orchestratorParams) (OrchestratorBackend, error) {
	return OpenOrchestrator(p.Ctx, p.Config.Storage, p.Config.DatabaseURI, p.Logger)
}

type closer interface {
	Close()
}

func registerLifecycle[B closer](lc fx.Lifecycle, backend B) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			backend.Close()
			return nil
		},
	})
}
