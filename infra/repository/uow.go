// Package repository provides the GORM implementations of the
// persistence contracts in pkg/repository.
package repository

import (
	"context"

	expenseinfra "github.com/amirasaad/splitshare/infra/repository/expense"
	groupinfra "github.com/amirasaad/splitshare/infra/repository/group"
	userinfra "github.com/amirasaad/splitshare/infra/repository/user"
	"github.com/amirasaad/splitshare/pkg/repository"
	expenserepo "github.com/amirasaad/splitshare/pkg/repository/expense"
	grouprepo "github.com/amirasaad/splitshare/pkg/repository/group"
	userrepo "github.com/amirasaad/splitshare/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the
// running transaction, so all writes of one operation commit or roll
// back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary, providing a UoW bound to the
// transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return userinfra.New(u.session()), nil
}

// GroupRepository returns a group repository bound to the current session.
func (u *UoW) GroupRepository() (grouprepo.Repository, error) {
	return groupinfra.New(u.session()), nil
}

// ExpenseRepository returns an expense repository bound to the current session.
func (u *UoW) ExpenseRepository() (expenserepo.Repository, error) {
	return expenseinfra.New(u.session()), nil
}
