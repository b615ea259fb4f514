package user

import (
	"errors"

	"github.com/amirasaad/splitshare/pkg/config"
	"github.com/amirasaad/splitshare/pkg/domain"
	"github.com/amirasaad/splitshare/pkg/middleware"
	usersvc "github.com/amirasaad/splitshare/pkg/service/user"
	"github.com/amirasaad/splitshare/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, cfg *config.App) {
	app.Post("/register", Register(userSvc))
	app.Get("/users", middleware.Protected(cfg.Auth.Jwt.Secret), ListUsers(userSvc))
}

// Register creates a new user account.
// @Summary Register a new user
// @Description Create an account with username, email, and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		created, err := userSvc.CreateUser(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return common.ProblemDetailsJSON(c, "User already exists", err)
			}
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", fiber.Map{
			"id":       created.ID,
			"username": created.Username,
			"email":    created.Email,
		})
	}
}

// ListUsers returns every registered user.
// @Summary List users
// @Description Retrieve all registered users
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.ListUsers(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users found", users)
	}
}
