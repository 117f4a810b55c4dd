// Package backend selects the service.Backend named by the configuration.
package backend

import (
	"context"
	"fmt"

	"tasklist/internal/backend/jsonfile"
	"tasklist/internal/backend/sqlite"
	"tasklist/internal/config"
	"tasklist/internal/service"
)

// Open returns the backend configured in cfg.
func Open(ctx context.Context, cfg *config.Config) (service.Backend, error) {
	switch cfg.Backend {
	case "", config.BackendJSON:
		return jsonfile.New(cfg.DataPath()), nil
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.DataPath())
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
