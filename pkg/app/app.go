// Package app assembles configuration, infrastructure dependencies and
// services into one application object the web layer runs on.
package app

import (
	"log/slog"

	"github.com/amirasaad/splitshare/pkg/config"
	"github.com/amirasaad/splitshare/pkg/repository"
	"github.com/amirasaad/splitshare/pkg/service/auth"
	"github.com/amirasaad/splitshare/pkg/service/expense"
	"github.com/amirasaad/splitshare/pkg/service/group"
	"github.com/amirasaad/splitshare/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services run on.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App bundles the configured services.
type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	UserService    *user.Service
	GroupService   *group.Service
	ExpenseService *expense.Service
}

// New wires the services against the given dependencies.
func New(deps *Deps, cfg *config.App) *App {
	a := &App{
		Deps:   deps,
		Config: cfg,
	}
	a.AuthService = auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	a.UserService = user.New(deps.Uow, deps.Logger)
	a.GroupService = group.New(deps.Uow, deps.Logger)
	a.ExpenseService = expense.New(deps.Uow, deps.Logger)
	return a
}
