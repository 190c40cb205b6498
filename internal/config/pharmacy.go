package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Pharmacy holds the configuration of one pharmacy instance.
type Pharmacy struct {
	RunAddress       string
	PharmacyID       string
	DatabaseURI      string
	Storage          string
	SeedFile         string
	ServiceTokenHash string
	ShutdownTimeout  time.Duration
	LogLevel         string
}

const (
	defaultPharmacyAddress = ":8001"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// LoadPharmacy parses configuration from flags and environment variables.
func LoadPharmacy() (*Pharmacy, error) {
	return loadPharmacy(os.Args[1:], os.LookupEnv)
}

func loadPharmacy(args []string, lookup envLookup) (*Pharmacy, error) {
	cfg := &Pharmacy{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultPharmacyAddress),
		PharmacyID:       getString(lookup, "PHARMACY_ID", ""),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		Storage:          getString(lookup, "STORAGE", StoragePostgres),
		SeedFile:         getString(lookup, "CATALOG_SEED_FILE", ""),
		ServiceTokenHash: getString(lookup, "SERVICE_TOKEN_HASH", ""),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("pharmacy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.PharmacyID, "id", cfg.PharmacyID, "Pharmacy (tenant) identifier")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: postgres or memory")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON catalog file loaded at start-up")
	fs.StringVar(&cfg.ServiceTokenHash, "token-hash", cfg.ServiceTokenHash, "bcrypt hash of the service token required on order commits")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PharmacyID == "" {
		return nil, fmt.Errorf("pharmacy id must be provided")
	}

	if !validStorage(cfg.Storage) {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if cfg.Storage == StoragePostgres && cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}
