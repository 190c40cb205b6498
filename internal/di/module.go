package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pharmanet/internal/adapter/pharmacy"
	"github.com/polkiloo/pharmanet/internal/app"
	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/logger"
	"github.com/polkiloo/pharmanet/internal/pkg/auth"
	"github.com/polkiloo/pharmanet/internal/pkg/clock"
	"github.com/polkiloo/pharmanet/internal/server/http/router"
	"github.com/polkiloo/pharmanet/internal/storage"
	"github.com/polkiloo/pharmanet/internal/usecase"
	"github.com/polkiloo/pharmanet/internal/worker"
)

// Pharmacy composes the graph of one pharmacy instance.
func Pharmacy(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.PharmacyModule,
		fx.Provide(
			func(cfg *config.Pharmacy) logger.Level { return logger.Level(cfg.LogLevel) },
			func(cfg *config.Pharmacy) usecase.Tenant { return usecase.Tenant(cfg.PharmacyID) },
		),
		logger.Module,
		clock.Module,
		storage.PharmacyModule,
		auth.Module,
		usecase.PharmacyModule,
		router.PharmacyModule,
		app.PharmacyModule,
	}
	return fx.Options(append(modules, opts...)...)
}

// Orchestrator composes the graph of the order orchestrator.
func Orchestrator(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.OrchestratorModule,
		fx.Provide(func(cfg *config.Orchestrator) logger.Level { return logger.Level(cfg.LogLevel) }),
		logger.Module,
		clock.Module,
		storage.OrchestratorModule,
		pharmacy.Module,
		usecase.OrchestratorModule,
		router.OrchestratorModule,
		app.OrchestratorModule,
	}
	return fx.Options(append(modules, opts...)...)
}

// Generator composes the graph of the synthetic order generator job.
func Generator(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.GeneratorModule,
		fx.Provide(func(cfg *config.Generator) logger.Level { return logger.Level(cfg.LogLevel) }),
		logger.Module,
		worker.Module,
		app.GeneratorModule,
	}
	return fx.Options(append(modules, opts...)...)
}
