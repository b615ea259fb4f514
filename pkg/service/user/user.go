// Package user provides business logic for account registration and
// lookup.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/splitshare/pkg/domain"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateUser registers a new account in a transaction. Username and
// email collisions map to domain.ErrAlreadyExists.
func (s *Service) CreateUser(
	ctx context.Context,
	username, email, password string,
) (u *user.User, err error) {
	log := s.logger.With("context", "CreateUser", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !taken {
			taken, err = repo.ExistsByEmail(ctx, email)
			if err != nil {
				return err
			}
		}
		if taken {
			return domain.ErrAlreadyExists
		}
		u, err = user.New(username, email, password)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.UserCreate{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
		})
	})
	if err != nil {
		u = nil
		log.Error("CreateUser failed", "error", err)
		return
	}
	log.Info("CreateUser successful", "userID", u.ID)
	return
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// ListUsers retrieves all registered users.
func (s *Service) ListUsers(
	ctx context.Context,
) (users []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.List(ctx)
		return err
	})
	if err != nil {
		users = nil
	}
	return
}
