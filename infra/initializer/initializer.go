// Package initializer constructs the application's infrastructure
// dependencies from configuration.
package initializer

import (
	"fmt"

	"github.com/amirasaad/splitshare/infra"
	infrarepo "github.com/amirasaad/splitshare/infra/repository"
	"github.com/amirasaad/splitshare/pkg/app"
	"github.com/amirasaad/splitshare/pkg/config"
)

// InitializeDependencies sets up the logger, opens the database and
// builds the unit of work the services run on.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, nil
}
