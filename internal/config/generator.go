package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Generator configures a synthetic order generation run.
type Generator struct {
	OrchestratorURL     string          `envconfig:"ORCHESTRATOR_URL" required:"true"`
	Catalogs            Registry        `envconfig:"CATALOG_URLS" required:"true"`
	OrdersTarget        int             `envconfig:"ORDERS_TARGET" default:"100"`
	QPSMax              float64         `envconfig:"QPS_MAX" default:"3"`
	MaxQty              int64           `envconfig:"MAX_QTY" default:"2"`
	DiscountPct         decimal.Decimal `envconfig:"DISCOUNT_PCT" default:"5"`
	ClientsMax          int             `envconfig:"CLIENTS_MAX" default:"999"`
	RequestTimeout      time.Duration   `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	RefreshCatalogEvery int             `envconfig:"REFRESH_CATALOG_EVERY" default:"0"`
	SeqStart            int             `envconfig:"SEQ_START" default:"0"`
	RandomSeed          int64           `envconfig:"RANDOM_SEED" default:"0"`
	LogLevel            string          `envconfig:"LOG_LEVEL" default:"info"`
}

const minQPS = 0.1

// LoadGenerator reads generator settings from the environment.
func LoadGenerator() (*Generator, error) {
	var cfg Generator
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "load generator config")
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Generator) normalize() error {
	if len(c.Catalogs) == 0 {
		return errors.New("at least one catalog url must be provided")
	}
	if c.DiscountPct.IsNegative() || c.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return errors.Newf("discount must be within [0, 100], got %s", c.DiscountPct)
	}
	if c.QPSMax < minQPS {
		c.QPSMax = minQPS
	}
	if c.MaxQty < 1 {
		c.MaxQty = 1
	}
	if c.ClientsMax < 1 {
		c.ClientsMax = 1
	}
	if c.OrdersTarget < 0 {
		c.OrdersTarget = 0
	}
	if c.RefreshCatalogEvery < 0 {
		c.RefreshCatalogEvery = 0
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return nil
}
