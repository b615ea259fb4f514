package main

import (
	"fmt"
	"log/slog"

	_ "github.com/amirasaad/splitshare/docs"
	"github.com/amirasaad/splitshare/infra/initializer"
	"github.com/amirasaad/splitshare/pkg/app"
	"github.com/amirasaad/splitshare/pkg/config"
	"github.com/amirasaad/splitshare/webapi"
	log "github.com/charmbracelet/log"
)

// @title Splitshare API
// @version 1.0.0
// @description Shared expense tracking API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
