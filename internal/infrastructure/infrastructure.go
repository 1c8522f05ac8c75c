// Package infrastructure assembles the shared systems every module depends on:
// lifecycle coordination, logging, the database pool, blob storage, and
// session token verification.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/pkg/database"
	"github.com/JaimeStill/device-inventory/pkg/lifecycle"
	"github.com/JaimeStill/device-inventory/pkg/logging"
	"github.com/JaimeStill/device-inventory/pkg/storage"
)

// Infrastructure holds the core systems required by the API and dashboard modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Tokens    *auth.Tokens
}

// New creates an Infrastructure from the application configuration.
// Systems are constructed but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Tokens:    auth.NewTokens(&cfg.Auth),
	}, nil
}

// Start registers every system with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// Scoped returns a copy whose logger is tagged with the module name.
func (i *Infrastructure) Scoped(module string) *Infrastructure {
	return &Infrastructure{
		Lifecycle: i.Lifecycle,
		Logger:    i.Logger.With("module", module),
		Database:  i.Database,
		Storage:   i.Storage,
		Tokens:    i.Tokens,
	}
}
