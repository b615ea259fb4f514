package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/amirasaad/splitshare/pkg/domain/user"
	authsvc "github.com/amirasaad/splitshare/pkg/service/auth"
)

// CurrentUserID reads the authenticated user's ID from the verified JWT
// the auth middleware stored in the request locals.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.GetCurrentUserID(token)
}
