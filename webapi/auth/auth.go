package auth

import (
	authsvc "github.com/amirasaad/splitshare/pkg/service/auth"
	"github.com/amirasaad/splitshare/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/login", Login(authSvc))
	app.Post("/token/refresh", Refresh(authSvc))
}

// Login authenticates a user and returns an access/refresh token pair.
// @Summary User login
// @Description Authenticate with identity (username or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		user, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			if common.StatusFromError(err) == fiber.StatusUnauthorized {
				// Generic message to prevent user enumeration
				return common.ProblemDetailsJSON(c, "Invalid identity or password", nil,
					"Identity or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		pair, err := authSvc.GenerateTokenPair(user)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}

// Refresh rotates a token pair from a valid refresh token.
// @Summary Refresh token pair
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshInput true "Refresh token"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /token/refresh [post]
func Refresh(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RefreshInput](c)
		if input == nil {
			return err
		}
		pair, err := authSvc.Refresh(c.Context(), input.Refresh)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid refresh token", nil,
				"Refresh token is invalid or expired", fiber.StatusUnauthorized)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Token refreshed", fiber.Map{
			"access":  pair.Access,
			"refresh": pair.Refresh,
		})
	}
}
