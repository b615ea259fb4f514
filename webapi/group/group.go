package group

import (
	"errors"

	"github.com/amirasaad/splitshare/pkg/config"
	groupdomain "github.com/amirasaad/splitshare/pkg/domain/group"
	"github.com/amirasaad/splitshare/pkg/middleware"
	authsvc "github.com/amirasaad/splitshare/pkg/service/auth"
	groupsvc "github.com/amirasaad/splitshare/pkg/service/group"
	"github.com/amirasaad/splitshare/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, groupSvc *groupsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Auth.Jwt.Secret)
	app.Get("/groups", protected, ListGroups(groupSvc, authSvc))
	app.Post("/groups", protected, CreateGroup(groupSvc, authSvc))
	app.Post("/groups/:id/join", protected, Join(groupSvc, authSvc))
	app.Get("/groups/:id/members", protected, Members(groupSvc, authSvc))
	app.Patch("/groups/:id/update", protected, UpdateMembers(groupSvc, authSvc))
	app.Patch("/groups/:id/edit", protected, Rename(groupSvc, authSvc))
	app.Delete("/groups/:id/edit", protected, Delete(groupSvc, authSvc))
}

// memberBatchError renders a failed membership change. The actor guard
// yields the bare sentinels; per-username failures come back wrapped and
// joined, so they land in the 400 branch with every name reported.
func memberBatchError(c *fiber.Ctx, title string, err error) error {
	switch {
	case errors.Is(err, groupdomain.ErrGroupNotFound):
		return common.ProblemDetailsJSON(c, "Group not found", err)
	case err == groupdomain.ErrNotMember:
		return common.ProblemDetailsJSON(c, "Forbidden", err, "You are not a member of this group")
	case common.StatusFromError(err) == fiber.StatusInternalServerError:
		return common.ProblemDetailsJSON(c, title, err)
	default:
		return common.ProblemDetailsJSON(c, title, err, fiber.StatusBadRequest)
	}
}

func parseGroupID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, common.ProblemDetailsJSON(c, "Invalid group ID", err,
			"Group ID must be a valid UUID", fiber.StatusBadRequest)
	}
	return id, nil
}

// CreateGroup creates a group with the caller as its first member.
// @Summary Create a group
// @Description Create a group; the creator becomes its first member
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateInput true "Group data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /groups [post]
// @Security Bearer
func CreateGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		g, err := groupSvc.CreateGroup(c.Context(), actorID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created group", g)
	}
}

// ListGroups returns the caller's groups.
// @Summary List groups
// @Description Retrieve groups the caller belongs to
// @Tags groups
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /groups [get]
// @Security Bearer
func ListGroups(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groups, err := groupSvc.ListGroups(c.Context(), actorID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list groups", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Groups found", groups)
	}
}

// Join adds the named users to the group in one batch.
// @Summary Add members
// @Description Add users to the group by username; the batch succeeds or fails as a whole
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body JoinInput true "Usernames to add"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/join [post]
// @Security Bearer
func Join(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, err := parseGroupID(c)
		if groupID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[JoinInput](c)
		if input == nil {
			return err
		}
		added, err := groupSvc.JoinGroup(c.Context(), actorID, groupID, input.Usernames)
		if err != nil {
			return memberBatchError(c, "Couldn't add members", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Members added", fiber.Map{
			"added_users": added,
		})
	}
}

// Members returns the group's member list in join order.
// @Summary List members
// @Description Retrieve the group's members
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/members [get]
// @Security Bearer
func Members(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, err := parseGroupID(c)
		if groupID == uuid.Nil {
			return err
		}
		members, err := groupSvc.Members(c.Context(), actorID, groupID)
		if err != nil {
			return memberBatchError(c, "Couldn't list members", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Members found", fiber.Map{
			"members": members,
		})
	}
}

// UpdateMembers adds or removes members depending on the action.
// @Summary Update members
// @Description Add or remove members by username; the batch succeeds or fails as a whole
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body UpdateMembersInput true "Action and usernames"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/update [patch]
// @Security Bearer
func UpdateMembers(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, err := parseGroupID(c)
		if groupID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[UpdateMembersInput](c)
		if input == nil {
			return err
		}
		modified, err := groupSvc.UpdateMembers(c.Context(), actorID, groupID,
			groupsvc.Action(input.Action), input.Usernames)
		if err != nil {
			return memberBatchError(c, "Couldn't update members", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Members updated", fiber.Map{
			"modified_users": modified,
		})
	}
}

// Rename changes the group's name.
// @Summary Rename a group
// @Description Change the group's name
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body RenameInput true "New name"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/edit [patch]
// @Security Bearer
func Rename(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, err := parseGroupID(c)
		if groupID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[RenameInput](c)
		if input == nil {
			return err
		}
		g, err := groupSvc.RenameGroup(c.Context(), actorID, groupID, input.Name)
		if err != nil {
			return memberBatchError(c, "Couldn't rename group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Group renamed", g)
	}
}

// Delete removes the group with its memberships and expenses.
// @Summary Delete a group
// @Description Remove the group, its memberships and expenses
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /groups/{id}/edit [delete]
// @Security Bearer
func Delete(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		groupID, err := parseGroupID(c)
		if groupID == uuid.Nil {
			return err
		}
		if err := groupSvc.DeleteGroup(c.Context(), actorID, groupID); err != nil {
			return memberBatchError(c, "Couldn't delete group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Group deleted", nil)
	}
}
