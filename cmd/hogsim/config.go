package main

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/cmd/config"
	"github.com/hogfinance/hogpool/core/backend"
	"github.com/hogfinance/hogpool/core/types"
)

// Config is the toml configuration of the serve command
type Config struct {
	BindAddress string
	LogLevel    string
	JSONLog     bool
	Scenario    string
	Store       StoreConfig
}

type StoreConfig struct {
	Driver string
	Path   string
}

func defaultConfig() *Config {
	return &Config{
		BindAddress: ":48000",
		LogLevel:    "info",
		Store: StoreConfig{
			Driver: "leveldb",
			Path:   "./_data",
		},
	}
}

// loadConfig reads the file over the defaults
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if len(path) > 0 {
		if err := config.LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if len(cfg.Store.Driver) == 0 || len(cfg.Store.Path) == 0 {
		return nil, errors.New("store driver and path are required")
	}
	return cfg, nil
}

func openStore(sc StoreConfig) (*types.StateStore, error) {
	db, err := backend.Create(sc.Driver, sc.Path)
	if err != nil {
		return nil, err
	}
	st, err := types.NewStateStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}
