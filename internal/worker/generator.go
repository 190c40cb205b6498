package worker

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/polkiloo/pharmanet/internal/config"
)

// Generator submits a bounded stream of synthetic orders. Every piece of run
// state lives in the Generator value.
type Generator struct {
	catalogs     config.Registry
	ordersTarget int
	refreshEvery int
	source       CatalogSource
	submitter    OrderSubmitter
	builder      *Builder
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// NewGenerator wires HTTP clients from cfg.
func NewGenerator(cfg *config.Generator, logger *slog.Logger) *Generator {
	return newGenerator(cfg,
		NewHTTPCatalogClient(cfg.RequestTimeout),
		NewHTTPOrderSubmitter(cfg.OrchestratorURL, cfg.RequestTimeout),
		newRand(cfg.RandomSeed),
		logger,
	)
}

func newGenerator(cfg *config.Generator, source CatalogSource, submitter OrderSubmitter, rnd *rand.Rand, logger *slog.Logger) *Generator {
	ids := make([]string, 0, len(cfg.Catalogs))
	for _, c := range cfg.Catalogs {
		ids = append(ids, c.ID)
	}
	qps := cfg.QPSMax
	if qps <= 0 {
		qps = 0.1
	}
	return &Generator{
		catalogs:     cfg.Catalogs,
		ordersTarget: cfg.OrdersTarget,
		refreshEvery: cfg.RefreshCatalogEvery,
		source:       source,
		submitter:    submitter,
		builder:      NewBuilder(rnd, ids, cfg.MaxQty, cfg.ClientsMax, cfg.DiscountPct, cfg.SeqStart),
		limiter:      rate.NewLimiter(rate.Limit(qps), 1),
		logger:       logger,
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Run seeds the mirror and performs exactly ordersTarget iterations unless ctx
// ends first. It fails only when no catalog could be read at start.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	mirror := NewStockMirror()
	if err := g.seed(ctx, mirror); err != nil {
		return stats, err
	}

	for i := 0; i < g.ordersTarget; i++ {
		if ctx.Err() != nil {
			g.logger.Warn("generator interrupted", slog.Any("stats", stats))
			return stats, nil
		}
		if g.refreshEvery > 0 && stats.Attempted > 0 && stats.Attempted%g.refreshEvery == 0 {
			g.refresh(ctx, mirror)
		}

		stats.Attempted++
		intent, ok := g.builder.Build(mirror)
		if !ok {
			stats.NoLocalCandidate++
			if err := g.limiter.Wait(ctx); err != nil {
				g.logger.Warn("generator interrupted", slog.Any("stats", stats))
				return stats, nil
			}
			continue
		}

		if err := g.limiter.Wait(ctx); err != nil {
			g.logger.Warn("generator interrupted", slog.Any("stats", stats))
			return stats, nil
		}

		status, err := g.submitter.Submit(ctx, intent.Request)
		switch {
		case err != nil && isTimeout(err):
			stats.FailedTimeout++
		case err != nil:
			stats.Failed5xx++
			g.logger.Debug("order submit failed", slog.String("error", err.Error()))
		case status >= 200 && status < 300:
			stats.Created++
			mirror.Decrement(intent.PharmacyID, intent.Index, intent.Quantity)
		case status >= 400 && status < 500:
			stats.Failed4xx++
		default:
			stats.Failed5xx++
		}
	}

	g.logger.Info("generator finished", slog.Any("stats", stats))
	return stats, nil
}

func (g *Generator) seed(ctx context.Context, mirror *StockMirror) error {
	if g.load(ctx, mirror, false) == 0 && len(g.catalogs) > 0 {
		return errors.New("no pharmacy catalog could be loaded")
	}
	return nil
}

func (g *Generator) refresh(ctx context.Context, mirror *StockMirror) {
	loaded := g.load(ctx, mirror, true)
	g.logger.Info("catalog refreshed", slog.Int("loaded", loaded), slog.Int("pharmacies", len(g.catalogs)))
}

// load reads every catalog into mirror and returns how many succeeded. A
// failing pharmacy gets an empty pool unless keepOnFailure is set.
func (g *Generator) load(ctx context.Context, mirror *StockMirror, keepOnFailure bool) int {
	loaded := 0
	for _, c := range g.catalogs {
		entries, err := g.source.FetchCatalog(ctx, c.BaseURL)
		if err != nil {
			g.logger.Warn("catalog load failed",
				slog.String("pharmacy_id", c.ID),
				slog.String("error", err.Error()),
			)
			if !keepOnFailure {
				mirror.Set(c.ID, nil)
			}
			continue
		}
		mirror.Set(c.ID, entries)
		loaded++
		g.logger.Debug("catalog loaded", slog.String("pharmacy_id", c.ID), slog.Int("products", len(entries)))
	}
	return loaded
}
