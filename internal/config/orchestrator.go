package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Orchestrator holds the configuration of the order orchestrator.
type Orchestrator struct {
	RunAddress      string
	DatabaseURI     string
	Storage         string
	Pharmacies      Registry
	RequestTimeout  time.Duration
	ServiceToken    string
	ShutdownTimeout time.Duration
	LogLevel        string
}

const (
	defaultOrchestratorAddress = ":8000"
	defaultRequestTimeout      = 15 * time.Second
)

// LoadOrchestrator parses configuration from flags and environment variables.
func LoadOrchestrator() (*Orchestrator, error) {
	return loadOrchestrator(os.Args[1:], os.LookupEnv)
}

func loadOrchestrator(args []string, lookup envLookup) (*Orchestrator, error) {
	cfg := &Orchestrator{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultOrchestratorAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		Storage:         getString(lookup, "STORAGE", StoragePostgres),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		ServiceToken:    getString(lookup, "SERVICE_TOKEN", ""),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}
	registryStr := getString(lookup, "PHARMACIES", "")

	fs := flag.NewFlagSet("orchestrator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: postgres or memory")
	fs.StringVar(&registryStr, "pharmacies", registryStr, "Pharmacy registry as id=url,id=url or a JSON object")
	fs.StringVar(&requestTimeoutStr, "timeout", requestTimeoutStr, "Timeout of each pharmacy call")
	fs.StringVar(&cfg.ServiceToken, "token", cfg.ServiceToken, "Service token sent to pharmacies")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Pharmacies, err = ParseRegistry(registryStr); err != nil {
		return nil, fmt.Errorf("invalid pharmacies: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if len(cfg.Pharmacies) == 0 {
		return nil, fmt.Errorf("pharmacy registry must be provided")
	}

	if !validStorage(cfg.Storage) {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if cfg.Storage == StoragePostgres && cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}
