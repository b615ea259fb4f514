// Package webapi provides the HTTP surface of the application. It is
// organized into sub-packages per resource:
// - auth: login and token refresh
// - user: registration and user listing
// - group: group and membership endpoints
// - expense: expense and summary endpoints
package webapi

import (
	"strings"

	"github.com/amirasaad/splitshare/pkg/app"
	"github.com/amirasaad/splitshare/pkg/middleware"
	authweb "github.com/amirasaad/splitshare/webapi/auth"
	"github.com/amirasaad/splitshare/webapi/common"
	expenseweb "github.com/amirasaad/splitshare/webapi/expense"
	groupweb "github.com/amirasaad/splitshare/webapi/group"
	userweb "github.com/amirasaad/splitshare/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp initializes Fiber with the shared middleware chain and
// registers every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Uses X-Forwarded-For when behind a proxy, falling back to the
	// direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(middleware.Metrics())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Splitshare API is running! 🚀")
	})

	authweb.Routes(fiberApp, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.Config)
	groupweb.Routes(fiberApp, a.GroupService, a.AuthService, a.Config)
	expenseweb.Routes(fiberApp, a.ExpenseService, a.AuthService, a.Config)
	return fiberApp
}
