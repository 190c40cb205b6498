package pharmacy

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/usecase"
)

// Module provides the pharmacy registry as the orchestrator gateway.
var Module = fx.Options(
	fx.Provide(newRegistryFromConfig),
	fx.Provide(func(r *Registry) usecase.PharmacyGateway { return r }),
)

type registryParams struct {
	fx.In

	Config *config.Orchestrator
	Logger *slog.Logger
}

func newRegistryFromConfig(p registryParams) (*Registry, error) {
	return NewRegistry(p.Config.Pharmacies, p.Config.RequestTimeout, p.Config.ServiceToken, p.Logger)
}
