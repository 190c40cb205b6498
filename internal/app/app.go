package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/pharmanet/internal/config"
	"github.com/polkiloo/pharmanet/internal/server/http/handlers"
	"github.com/polkiloo/pharmanet/internal/storage"
	"github.com/polkiloo/pharmanet/internal/worker"
)

// ServerConfig is the part of a service configuration the HTTP runtime needs.
type ServerConfig struct {
	Name            string
	Addr            string
	ShutdownTimeout time.Duration
}

// PharmacyModule wires the pharmacy facade, HTTP server, catalog seeding and lifecycle hooks.
var PharmacyModule = fx.Options(
	fx.Provide(
		func(b storage.PharmacyBackend) HealthChecker { return b },
		NewPharmacyFacade,
		func(f *PharmacyFacade) handlers.PharmacyFacade { return f },
		func(cfg *config.Pharmacy) ServerConfig {
			return ServerConfig{Name: "pharmacy " + cfg.PharmacyID, Addr: cfg.RunAddress, ShutdownTimeout: cfg.ShutdownTimeout}
		},
		newHTTPServer,
	),
	fx.Invoke(registerCatalogSeed, registerServerLifecycle),
)

// OrchestratorModule wires the orchestrator facade, HTTP server and lifecycle hooks.
var OrchestratorModule = fx.Options(
	fx.Provide(
		func(b storage.OrchestratorBackend) HealthChecker { return b },
		NewOrchestratorFacade,
		func(f *OrchestratorFacade) handlers.OrchestratorFacade { return f },
		func(cfg *config.Orchestrator) ServerConfig {
			return ServerConfig{Name: "orchestrator", Addr: cfg.RunAddress, ShutdownTimeout: cfg.ShutdownTimeout}
		},
		newHTTPServer,
	),
	fx.Invoke(registerServerLifecycle),
)

// GeneratorModule runs the order generator once and shuts the application down.
var GeneratorModule = fx.Invoke(registerGeneratorLifecycle)

type serverParams struct {
	fx.In

	Config ServerConfig
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.Addr,
		Handler:           p.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type seedParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Pharmacy
	Facade    *PharmacyFacade
	Logger    *slog.Logger
}

func registerCatalogSeed(p seedParams) {
	if p.Config.SeedFile == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			f, err := os.Open(p.Config.SeedFile)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := p.Facade.SeedCatalog(ctx, f)
			if err != nil {
				return err
			}
			p.Logger.Info("catalog seeded", slog.String("file", p.Config.SeedFile), slog.Int("products", n))
			return nil
		},
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Config     ServerConfig
}

func registerServerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting "+p.Config.Name, slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info(p.Config.Name + " stopped")
			return nil
		},
	})
}

// runner is satisfied by *worker.Generator.
type runner interface {
	Run(ctx context.Context) (worker.Stats, error)
}

type generatorParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Generator  *worker.Generator
}

func registerGeneratorLifecycle(p generatorParams) {
	registerRunner(p.Lifecycle, p.Shutdowner, p.Logger, p.Generator)
}

// registerRunner starts r in the background on start and requests shutdown
// when it returns. The exit code is 1 when the run could not start.
func registerRunner(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, r runner) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting order generator")
			go func() {
				defer close(done)
				code := 0
				if _, err := r.Run(runCtx); err != nil {
					logger.Error("order generator failed", slog.String("error", err.Error()))
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
