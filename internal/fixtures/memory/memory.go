// Package memory provides in-memory repository implementations backing
// service and handler tests. Do snapshots the store and restores it when
// the callback fails, matching the rollback behavior of the real unit
// of work.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository"
	expenserepo "github.com/amirasaad/splitshare/pkg/repository/expense"
	grouprepo "github.com/amirasaad/splitshare/pkg/repository/group"
	userrepo "github.com/amirasaad/splitshare/pkg/repository/user"
)

type groupRecord struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
	memberIDs []uuid.UUID // join order
}

type expenseRecord struct {
	id            uuid.UUID
	groupID       uuid.UUID
	description   string
	amount        decimal.Decimal
	splitType     string
	createdAt     time.Time
	contributions []dto.ContributionRead
}

// Store holds all records behind the in-memory repositories.
type Store struct {
	mu       sync.Mutex
	users    []dto.UserRead
	groups   []*groupRecord
	expenses []*expenseRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) snapshot() ([]dto.UserRead, []*groupRecord, []*expenseRecord) {
	users := make([]dto.UserRead, len(s.users))
	copy(users, s.users)
	groups := make([]*groupRecord, 0, len(s.groups))
	for _, g := range s.groups {
		clone := *g
		clone.memberIDs = append([]uuid.UUID(nil), g.memberIDs...)
		groups = append(groups, &clone)
	}
	expenses := make([]*expenseRecord, 0, len(s.expenses))
	for _, e := range s.expenses {
		clone := *e
		clone.contributions = append([]dto.ContributionRead(nil), e.contributions...)
		expenses = append(expenses, &clone)
	}
	return users, groups, expenses
}

func (s *Store) findGroup(id uuid.UUID) *groupRecord {
	for _, g := range s.groups {
		if g.id == id {
			return g
		}
	}
	return nil
}

func (s *Store) findExpense(id uuid.UUID) *expenseRecord {
	for _, e := range s.expenses {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (s *Store) findUser(id uuid.UUID) *dto.UserRead {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

// UnitOfWork is the in-memory transaction boundary over a Store.
type UnitOfWork struct {
	store *Store
	inTx  bool
}

// NewUoW creates a unit of work over the given store.
func NewUoW(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Do runs fn against the store, restoring the pre-call state when fn
// fails. Nested calls reuse the outer boundary.
func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	u.store.mu.Lock()
	users, groups, expenses := u.store.snapshot()
	u.store.mu.Unlock()

	err := fn(&UnitOfWork{store: u.store, inTx: true})
	if err != nil {
		u.store.mu.Lock()
		u.store.users = users
		u.store.groups = groups
		u.store.expenses = expenses
		u.store.mu.Unlock()
	}
	return err
}

// UserRepository returns the in-memory user repository.
func (u *UnitOfWork) UserRepository() (userrepo.Repository, error) {
	return &userRepository{store: u.store}, nil
}

// GroupRepository returns the in-memory group repository.
func (u *UnitOfWork) GroupRepository() (grouprepo.Repository, error) {
	return &groupRepository{store: u.store}, nil
}

// ExpenseRepository returns the in-memory expense repository.
func (u *UnitOfWork) ExpenseRepository() (expenserepo.Repository, error) {
	return &expenseRepository{store: u.store}, nil
}
