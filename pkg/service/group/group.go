// Package group provides group lifecycle and membership management,
// including the membership guard every group-gated operation runs
// through.
package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/splitshare/pkg/domain"
	"github.com/amirasaad/splitshare/pkg/domain/group"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository"
	"github.com/google/uuid"
)

// Action selects what a membership update does.
type Action string

const (
	// ActionAdd adds the named users to the group.
	ActionAdd Action = "add"
	// ActionRemove removes the named users from the group.
	ActionRemove Action = "remove"
)

// ErrInvalidAction is returned for membership-update actions outside
// {add, remove}.
var ErrInvalidAction = errors.New("invalid action")

// Service provides group and membership business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a group Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateGroup creates a group and adds the creator as its first member,
// so a group is never visible without members.
func (s *Service) CreateGroup(
	ctx context.Context,
	actorID uuid.UUID,
	name string,
) (g *dto.GroupRead, err error) {
	log := s.logger.With("context", "CreateGroup", "actorID", actorID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.GroupRepository()
		if err != nil {
			return err
		}
		created, err := group.New(name)
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.GroupCreate{
			ID:   created.ID,
			Name: created.Name,
		}); err != nil {
			return err
		}
		if err = repo.AddMember(ctx, created.ID, actorID); err != nil {
			return err
		}
		g, err = repo.Get(ctx, created.ID)
		return err
	})
	if err != nil {
		g = nil
		log.Error("CreateGroup failed", "error", err)
		return
	}
	log.Info("CreateGroup successful", "groupID", g.ID)
	return
}

// ListGroups retrieves the groups the actor belongs to.
func (s *Service) ListGroups(
	ctx context.Context,
	actorID uuid.UUID,
) (groups []*dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.GroupRepository()
		if err != nil {
			return err
		}
		groups, err = repo.ListByMember(ctx, actorID)
		return err
	})
	if err != nil {
		groups = nil
	}
	return
}

// Authorize fetches the group and checks that the actor belongs to it.
// It returns group.ErrGroupNotFound for unknown groups and
// group.ErrNotMember when the actor is outside the member set.
func (s *Service) Authorize(
	ctx context.Context,
	actorID, groupID uuid.UUID,
) (g *dto.GroupRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err = AuthorizeOn(ctx, uow, actorID, groupID)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// AuthorizeOn is the guard shared by every member-gated operation; it
// runs on the caller's unit of work so guard and mutation stay in one
// transaction.
func AuthorizeOn(
	ctx context.Context,
	uow repository.UnitOfWork,
	actorID, groupID uuid.UUID,
) (*dto.GroupRead, error) {
	repo, err := uow.GroupRepository()
	if err != nil {
		return nil, err
	}
	g, err := repo.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if !g.HasMember(actorID) {
		return nil, group.ErrNotMember
	}
	return g, nil
}

// ResolveMember looks up a username and checks it against the group's
// member set. It returns user.ErrUserNotFound for unknown usernames and
// group.ErrNotMember for users outside the group, each wrapped with the
// offending username.
func (s *Service) ResolveMember(
	ctx context.Context,
	g *dto.GroupRead,
	username string,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err = ResolveMemberOn(ctx, uow, g, username)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// ResolveMemberOn is ResolveMember running on the caller's unit of work.
func ResolveMemberOn(
	ctx context.Context,
	uow repository.UnitOfWork,
	g *dto.GroupRead,
	username string,
) (*dto.UserRead, error) {
	repo, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%s: %w", username, user.ErrUserNotFound)
	}
	if !g.HasMember(u.ID) {
		return nil, fmt.Errorf("%s: %w", username, group.ErrNotMember)
	}
	return u, nil
}

// JoinGroup adds the named users to the group. The batch is
// validate-then-apply: every username is checked first and all failures
// are reported together; on any failure nothing is added.
func (s *Service) JoinGroup(
	ctx context.Context,
	actorID, groupID uuid.UUID,
	usernames []string,
) (added []string, err error) {
	log := s.logger.With("context", "JoinGroup", "groupID", groupID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := AuthorizeOn(ctx, uow, actorID, groupID)
		if err != nil {
			return err
		}
		added, err = addMembers(ctx, uow, g, usernames)
		return err
	})
	if err != nil {
		added = nil
		log.Warn("JoinGroup failed", "error", err)
		return
	}
	log.Info("JoinGroup successful", "added", added)
	return
}

// UpdateMembers adds or removes the named users depending on the action.
// Batches are all-or-nothing, like JoinGroup.
func (s *Service) UpdateMembers(
	ctx context.Context,
	actorID, groupID uuid.UUID,
	action Action,
	usernames []string,
) (modified []string, err error) {
	log := s.logger.With("context", "UpdateMembers", "groupID", groupID, "action", action)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := AuthorizeOn(ctx, uow, actorID, groupID)
		if err != nil {
			return err
		}
		switch action {
		case ActionAdd:
			modified, err = addMembers(ctx, uow, g, usernames)
		case ActionRemove:
			modified, err = removeMembers(ctx, uow, g, usernames)
		default:
			err = fmt.Errorf("%w: %q", ErrInvalidAction, action)
		}
		return err
	})
	if err != nil {
		modified = nil
		log.Warn("UpdateMembers failed", "error", err)
		return
	}
	log.Info("UpdateMembers successful", "modified", modified)
	return
}

func addMembers(
	ctx context.Context,
	uow repository.UnitOfWork,
	g *dto.GroupRead,
	usernames []string,
) ([]string, error) {
	if len(usernames) == 0 {
		return nil, fmt.Errorf("%w: usernames are required", domain.ErrValidation)
	}
	userRepo, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	groupRepo, err := uow.GroupRepository()
	if err != nil {
		return nil, err
	}

	var errs []error
	users := make([]*dto.UserRead, 0, len(usernames))
	for _, username := range usernames {
		u, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		switch {
		case u == nil:
			errs = append(errs, fmt.Errorf("%s: %w", username, user.ErrUserNotFound))
		case g.HasMember(u.ID):
			errs = append(errs, fmt.Errorf("%s: %w", username, group.ErrAlreadyMember))
		default:
			users = append(users, u)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	added := make([]string, 0, len(users))
	for _, u := range users {
		if err := groupRepo.AddMember(ctx, g.ID, u.ID); err != nil {
			return nil, err
		}
		added = append(added, u.Username)
	}
	return added, nil
}

func removeMembers(
	ctx context.Context,
	uow repository.UnitOfWork,
	g *dto.GroupRead,
	usernames []string,
) ([]string, error) {
	if len(usernames) == 0 {
		return nil, fmt.Errorf("%w: usernames are required", domain.ErrValidation)
	}
	groupRepo, err := uow.GroupRepository()
	if err != nil {
		return nil, err
	}

	var errs []error
	users := make([]*dto.UserRead, 0, len(usernames))
	for _, username := range usernames {
		u, err := ResolveMemberOn(ctx, uow, g, username)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		users = append(users, u)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	removed := make([]string, 0, len(users))
	for _, u := range users {
		if err := groupRepo.RemoveMember(ctx, g.ID, u.ID); err != nil {
			return nil, err
		}
		removed = append(removed, u.Username)
	}
	return removed, nil
}

// Members retrieves the group's member list in join order.
func (s *Service) Members(
	ctx context.Context,
	actorID, groupID uuid.UUID,
) ([]dto.UserRead, error) {
	g, err := s.Authorize(ctx, actorID, groupID)
	if err != nil {
		return nil, err
	}
	return g.Members, nil
}

// RenameGroup changes the group's name.
func (s *Service) RenameGroup(
	ctx context.Context,
	actorID, groupID uuid.UUID,
	name string,
) (g *dto.GroupRead, err error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrValidation)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := AuthorizeOn(ctx, uow, actorID, groupID); err != nil {
			return err
		}
		repo, err := uow.GroupRepository()
		if err != nil {
			return err
		}
		if err = repo.Update(ctx, groupID, &dto.GroupUpdate{Name: &name}); err != nil {
			return err
		}
		g, err = repo.Get(ctx, groupID)
		return err
	})
	if err != nil {
		g = nil
	}
	return
}

// DeleteGroup removes the group with its memberships and expenses.
func (s *Service) DeleteGroup(
	ctx context.Context,
	actorID, groupID uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteGroup", "groupID", groupID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := AuthorizeOn(ctx, uow, actorID, groupID); err != nil {
			return err
		}
		expenseRepo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		expenses, err := expenseRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		for _, e := range expenses {
			if err = expenseRepo.Delete(ctx, e.ID); err != nil {
				return err
			}
		}
		repo, err := uow.GroupRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, groupID)
	})
	if err != nil {
		log.Warn("DeleteGroup failed", "error", err)
		return err
	}
	log.Info("DeleteGroup successful")
	return nil
}
