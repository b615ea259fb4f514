package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amirasaad/splitshare/pkg/dto"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now().UTC()
	r.store.users = append(r.store.users, dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		Email:          create.Email,
		HashedPassword: create.Password,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u := r.store.findUser(id); u != nil {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Username == username {
			clone := r.store.users[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Email == email {
			clone := r.store.users[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *userRepository) List(ctx context.Context) ([]*dto.UserRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*dto.UserRead, 0, len(r.store.users))
	for i := range r.store.users {
		clone := r.store.users[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.GetByUsername(ctx, username)
	return u != nil, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

type groupRepository struct {
	store *Store
}

func (r *groupRepository) Create(ctx context.Context, create *dto.GroupCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.groups = append(r.store.groups, &groupRecord{
		id:        create.ID,
		name:      create.Name,
		createdAt: time.Now().UTC(),
	})
	return nil
}

func (r *groupRepository) read(g *groupRecord) *dto.GroupRead {
	members := make([]dto.UserRead, 0, len(g.memberIDs))
	for _, id := range g.memberIDs {
		if u := r.store.findUser(id); u != nil {
			members = append(members, *u)
		}
	}
	return &dto.GroupRead{
		ID:        g.id,
		Name:      g.name,
		Members:   members,
		CreatedAt: g.createdAt,
	}
}

func (r *groupRepository) Get(ctx context.Context, id uuid.UUID) (*dto.GroupRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if g := r.store.findGroup(id); g != nil {
		return r.read(g), nil
	}
	return nil, nil
}

func (r *groupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*dto.GroupRead
	for _, g := range r.store.groups {
		for _, id := range g.memberIDs {
			if id == userID {
				out = append(out, r.read(g))
				break
			}
		}
	}
	return out, nil
}

func (r *groupRepository) Update(ctx context.Context, id uuid.UUID, update *dto.GroupUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if g := r.store.findGroup(id); g != nil && update.Name != nil {
		g.name = *update.Name
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.groups[:0]
	for _, g := range r.store.groups {
		if g.id != id {
			out = append(out, g)
		}
	}
	r.store.groups = out
	return nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if g := r.store.findGroup(groupID); g != nil {
		g.memberIDs = append(g.memberIDs, userID)
	}
	return nil
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if g := r.store.findGroup(groupID); g != nil {
		out := g.memberIDs[:0]
		for _, id := range g.memberIDs {
			if id != userID {
				out = append(out, id)
			}
		}
		g.memberIDs = out
	}
	return nil
}

type expenseRepository struct {
	store *Store
}

func (r *expenseRepository) Create(ctx context.Context, create *dto.ExpenseCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.expenses = append(r.store.expenses, &expenseRecord{
		id:          create.ID,
		groupID:     create.GroupID,
		description: create.Description,
		amount:      create.Amount,
		splitType:   create.SplitType,
		createdAt:   time.Now().UTC(),
	})
	return nil
}

func (r *expenseRepository) read(e *expenseRecord) *dto.ExpenseRead {
	contributions := make([]dto.ContributionRead, len(e.contributions))
	copy(contributions, e.contributions)
	return &dto.ExpenseRead{
		ID:            e.id,
		GroupID:       e.groupID,
		Description:   e.description,
		Amount:        e.amount,
		SplitType:     e.splitType,
		Contributions: contributions,
		CreatedAt:     e.createdAt,
	}
}

func (r *expenseRepository) Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e := r.store.findExpense(id); e != nil {
		return r.read(e), nil
	}
	return nil, nil
}

func (r *expenseRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.ExpenseRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*dto.ExpenseRead
	for _, e := range r.store.expenses {
		if e.groupID == groupID {
			out = append(out, r.read(e))
		}
	}
	return out, nil
}

func (r *expenseRepository) Update(ctx context.Context, id uuid.UUID, update *dto.ExpenseUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e := r.store.findExpense(id)
	if e == nil {
		return nil
	}
	if update.Description != nil {
		e.description = *update.Description
	}
	if update.Amount != nil {
		e.amount = *update.Amount
	}
	if update.SplitType != nil {
		e.splitType = *update.SplitType
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.store.expenses[:0]
	for _, e := range r.store.expenses {
		if e.id != id {
			out = append(out, e)
		}
	}
	r.store.expenses = out
	return nil
}

func (r *expenseRepository) CreateContributions(ctx context.Context, creates []*dto.ContributionCreate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range creates {
		e := r.store.findExpense(c.ExpenseID)
		if e == nil {
			continue
		}
		username := ""
		if u := r.store.findUser(c.UserID); u != nil {
			username = u.Username
		}
		e.contributions = append(e.contributions, dto.ContributionRead{
			ID:       c.ID,
			UserID:   c.UserID,
			Username: username,
			Amount:   c.Amount,
		})
	}
	return nil
}

func (r *expenseRepository) ReplaceContributions(ctx context.Context, expenseID uuid.UUID, creates []*dto.ContributionCreate) error {
	r.store.mu.Lock()
	if e := r.store.findExpense(expenseID); e != nil {
		e.contributions = nil
	}
	r.store.mu.Unlock()
	return r.CreateContributions(ctx, creates)
}

func (r *expenseRepository) ListContributionsByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.ContributionRead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*dto.ContributionRead
	for _, e := range r.store.expenses {
		if e.groupID != groupID {
			continue
		}
		for i := range e.contributions {
			clone := e.contributions[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}
