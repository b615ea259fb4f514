package expense

import (
	"errors"

	"github.com/amirasaad/splitshare/pkg/config"
	expensedomain "github.com/amirasaad/splitshare/pkg/domain/expense"
	groupdomain "github.com/amirasaad/splitshare/pkg/domain/group"
	"github.com/amirasaad/splitshare/pkg/middleware"
	authsvc "github.com/amirasaad/splitshare/pkg/service/auth"
	expensesvc "github.com/amirasaad/splitshare/pkg/service/expense"
	"github.com/amirasaad/splitshare/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, expenseSvc *expensesvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt.Secret)
	app.Get("/groups/:id/expenses", protected, ListExpenses(expenseSvc, authSvc))
	app.Post("/groups/:id/expenses", protected, CreateExpense(expenseSvc, authSvc))
	app.Patch("/groups/:id/expenses/:eid", protected, UpdateExpense(expenseSvc, authSvc))
	app.Delete("/groups/:id/expenses/:eid", protected, DeleteExpense(expenseSvc, authSvc))
	app.Get("/groups/:id/summary", protected, Summary(expenseSvc, authSvc))
}

// expenseError renders a failed expense operation. Guard sentinels map
// to 404/403; split and contribution validation failures, joined or
// not, map to 400.
func expenseError(c *fiber.Ctx, title string, err error) error {
	switch {
	case errors.Is(err, groupdomain.ErrGroupNotFound),
		errors.Is(err, expensedomain.ErrExpenseNotFound):
		return common.ProblemDetailsJSON(c, "Not found", err)
	case err == groupdomain.ErrNotMember:
		return common.ProblemDetailsJSON(c, "Forbidden", err, "You are not a member of this group")
	case common.StatusFromError(err) == fiber.StatusInternalServerError:
		return common.ProblemDetailsJSON(c, title, err)
	default:
		return common.ProblemDetailsJSON(c, title, err, fiber.StatusBadRequest)
	}
}

func parseIDs(c *fiber.Ctx, withExpense bool) (groupID, expenseID uuid.UUID, err error) {
	groupID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, common.ProblemDetailsJSON(c, "Invalid group ID", err,
			"Group ID must be a valid UUID", fiber.StatusBadRequest)
	}
	if withExpense {
		expenseID, err = uuid.Parse(c.Params("eid"))
		if err != nil {
			return uuid.Nil, uuid.Nil, common.ProblemDetailsJSON(c, "Invalid expense ID", err,
				"Expense ID must be a valid UUID", fiber.StatusBadRequest)
		}
	}
	return groupID, expenseID, nil
}

func toServiceContributions(in []ContributionInput) []expensesvc.ContributionInput {
	if in == nil {
		return nil
	}
	out := make([]expensesvc.ContributionInput, 0, len(in))
	for _, entry := range in {
		out = append(out, expensesvc.ContributionInput{
			Username: entry.Username,
			Amount:   entry.Amount,
		})
	}
	return out
}

// CreateExpense records an expense against the group.
// @Summary Create an expense
// @Description Record an expense with an equal or custom split
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body CreateInput true "Expense data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/expenses [post]
// @Security Bearer
func CreateExpense(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, _, err := parseIDs(c, false)
		if groupID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		e, err := expenseSvc.CreateExpense(c.Context(), actorID, groupID, &expensesvc.CreateInput{
			Description:   input.Description,
			Amount:        input.Amount,
			SplitType:     input.SplitType,
			Contributions: toServiceContributions(input.Contributions),
		})
		if err != nil {
			return expenseError(c, "Couldn't create expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created expense", e)
	}
}

// ListExpenses returns the group's expenses with contributions.
// @Summary List expenses
// @Description Retrieve the group's expenses
// @Tags expenses
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/expenses [get]
// @Security Bearer
func ListExpenses(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, _, err := parseIDs(c, false)
		if groupID == uuid.Nil {
			return err
		}
		expenses, err := expenseSvc.ListExpenses(c.Context(), actorID, groupID)
		if err != nil {
			return expenseError(c, "Couldn't list expenses", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expenses found", expenses)
	}
}

// UpdateExpense edits an expense and replaces its contribution set when
// the split changes.
// @Summary Update an expense
// @Description Edit an expense; amount or split changes recompute the contributions
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param eid path string true "Expense ID"
// @Param request body UpdateInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/expenses/{eid} [patch]
// @Security Bearer
func UpdateExpense(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, expenseID, err := parseIDs(c, true)
		if groupID == uuid.Nil || expenseID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateInput](c)
		if input == nil {
			return err
		}
		e, err := expenseSvc.UpdateExpense(c.Context(), actorID, groupID, expenseID,
			&expensesvc.UpdateInput{
				Description:   input.Description,
				Amount:        input.Amount,
				SplitType:     input.SplitType,
				Contributions: toServiceContributions(input.Contributions),
			})
		if err != nil {
			return expenseError(c, "Couldn't update expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense updated", e)
	}
}

// DeleteExpense removes an expense with its contributions.
// @Summary Delete an expense
// @Description Remove an expense and its contributions
// @Tags expenses
// @Produce json
// @Param id path string true "Group ID"
// @Param eid path string true "Expense ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/expenses/{eid} [delete]
// @Security Bearer
func DeleteExpense(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, expenseID, err := parseIDs(c, true)
		if groupID == uuid.Nil || expenseID == uuid.Nil {
			return err
		}
		if err := expenseSvc.DeleteExpense(c.Context(), actorID, groupID, expenseID); err != nil {
			return expenseError(c, "Couldn't delete expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense deleted", nil)
	}
}

// Summary returns the group's settlement report.
// @Summary Group balance summary
// @Description Compute who owes and who is owed across the group's expenses
// @Tags expenses
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/summary [get]
// @Security Bearer
func Summary(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, _, err := parseIDs(c, false)
		if groupID == uuid.Nil {
			return err
		}
		balances, err := expenseSvc.Summary(c.Context(), actorID, groupID)
		if err != nil {
			return expenseError(c, "Couldn't compute summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary computed", fiber.Map{
			"balances": balances,
		})
	}
}
