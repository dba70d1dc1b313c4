package cmd

import (
	"fmt"

	"github.com/monoserve/monoserve/internal/config"
	"github.com/monoserve/monoserve/internal/logging"
	"github.com/monoserve/monoserve/internal/registry"
)

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newStore builds the registry store from config, honoring a directory
// override when one is set.
func newStore(cfg *config.Config, logger *logging.Logger) *registry.Store {
	rlog := logger.WithComponent("registry")
	if cfg.Registry.Dir != "" {
		return registry.NewStoreAt(cfg.Registry.Dir, rlog)
	}
	return registry.NewStore(rlog)
}
