// Package common holds the response envelope, problem-details rendering
// and request binding shared by every route package.
package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amirasaad/splitshare/pkg/domain"
	"github.com/amirasaad/splitshare/pkg/domain/expense"
	"github.com/amirasaad/splitshare/pkg/domain/group"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/split"
)

// Response is the success envelope for all endpoints.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails is an RFC 9457 error body.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes the success envelope with the given status.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. Extras may
// carry a detail string and/or an explicit status code; without an
// explicit status the code is derived from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	status := 0
	detail := ""
	for _, extra := range extras {
		switch v := extra.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		status = StatusFromError(err)
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Path(),
	})
}

// StatusFromError maps domain errors to HTTP status codes. Unknown
// errors map to 500.
func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, group.ErrAlreadyMember):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, group.ErrNotMember):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, group.ErrGroupNotFound),
		errors.Is(err, expense.ErrExpenseNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, expense.ErrInvalidAmount),
		errors.Is(err, expense.ErrInvalidSplitType),
		errors.Is(err, expense.ErrNegativeContribution),
		errors.Is(err, split.ErrAmountMismatch),
		errors.Is(err, split.ErrMissingContributions),
		errors.Is(err, split.ErrNegativeAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
