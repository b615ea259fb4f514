// Package repository defines the persistence contracts the services
// depend on. Concrete implementations live under infra/repository; tests
// use the in-memory fixtures.
package repository

import (
	"context"

	"github.com/amirasaad/splitshare/pkg/repository/expense"
	"github.com/amirasaad/splitshare/pkg/repository/group"
	"github.com/amirasaad/splitshare/pkg/repository/user"
)

// UnitOfWork is the transaction boundary and repository registry in one
// abstraction. Repositories obtained inside Do share the same DB
// session, so a failed validation step rolls back every write of the
// operation; services never see partially applied state.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork
	// passed to fn hands out repositories bound to that transaction.
	// If fn returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// UserRepository returns the user repository bound to the current
	// session.
	UserRepository() (user.Repository, error)

	// GroupRepository returns the group repository bound to the current
	// session.
	GroupRepository() (group.Repository, error)

	// ExpenseRepository returns the expense repository bound to the
	// current session.
	ExpenseRepository() (expense.Repository, error)
}
