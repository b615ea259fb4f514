// Package auth provides credential verification and JWT issuance. Login
// returns an access/refresh token pair; the refresh operation rotates it.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/splitshare/pkg/config"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository"
	"github.com/amirasaad/splitshare/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash keeps the bcrypt comparison on unknown identities so login
// timing does not leak whether a username exists.
const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// TokenPair is an access token and the refresh token that can rotate it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Service verifies credentials and issues JWT token pairs.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the identity (username or email) and password and
// returns the matching user.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "identity", identity)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if utils.IsEmail(identity) {
			u, err = repo.GetByEmail(ctx, identity)
		} else {
			u, err = repo.GetByUsername(ctx, identity)
		}
		if err != nil {
			return err
		}
		if u == nil {
			// Always check a hash to avoid timing attacks
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Warn("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			log.Warn("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
		return
	}
	log.Info("Login successful", "userID", u.ID)
	return
}

// GenerateTokenPair issues a fresh access/refresh pair for the user.
func (s *Service) GenerateTokenPair(u *dto.UserRead) (*TokenPair, error) {
	access := jwt.New(jwt.SigningMethodHS256)
	claims := access.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["user_id"] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	accessString, err := access.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.New(jwt.SigningMethodHS256)
	refreshClaims := refresh.Claims.(jwt.MapClaims)
	refreshClaims["user_id"] = u.ID.String()
	refreshClaims["token_type"] = "refresh"
	refreshClaims["exp"] = time.Now().Add(s.cfg.RefreshExpiry).Unix()
	refreshString, err := refresh.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: accessString, Refresh: refreshString}, nil
}

// Refresh validates a refresh token and rotates the pair.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*TokenPair, error) {
	log := s.logger.With("context", "Refresh")
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		log.Warn("Refresh failed", "error", err)
		return nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		log.Warn("Refresh failed", "error", "not a refresh token")
		return nil, user.ErrUserUnauthorized
	}
	userIDRaw, ok := claims["user_id"].(string)
	if !ok {
		return nil, user.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		return nil, user.ErrUserUnauthorized
	}

	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserUnauthorized
	}
	log.Info("Refresh successful", "userID", u.ID)
	return s.GenerateTokenPair(u)
}

// GetCurrentUserID extracts the authenticated user's ID from a verified
// JWT, as stored in the request context by the middleware.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userIDRaw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return uuid.Parse(userIDRaw)
}
