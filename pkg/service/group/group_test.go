package group_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/splitshare/internal/fixtures/memory"
	"github.com/amirasaad/splitshare/pkg/domain"
	groupdomain "github.com/amirasaad/splitshare/pkg/domain/group"
	userdomain "github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	groupsvc "github.com/amirasaad/splitshare/pkg/service/group"
	usersvc "github.com/amirasaad/splitshare/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupFixture struct {
	groups *groupsvc.Service
	users  *usersvc.Service
	alice  uuid.UUID
	bob    uuid.UUID
	carol  uuid.UUID
}

func newGroupFixture(t *testing.T) *groupFixture {
	t.Helper()
	uow := memory.NewUoW(memory.NewStore())
	f := &groupFixture{
		groups: groupsvc.New(uow, slog.Default()),
		users:  usersvc.New(uow, slog.Default()),
	}
	for _, reg := range []struct {
		name string
		id   *uuid.UUID
	}{
		{"alice", &f.alice},
		{"bob", &f.bob},
		{"carol", &f.carol},
	} {
		u, err := f.users.CreateUser(context.Background(), reg.name, reg.name+"@example.com", "password1")
		require.NoError(t, err)
		*reg.id = u.ID
	}
	return f
}

func memberNames(g *dto.GroupRead) []string {
	names := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		names = append(names, m.Username)
	}
	return names
}

func TestCreateGroup_CreatorIsFirstMember(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)

	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "trip", g.Name)
	assert.Equal(t, []string{"alice"}, memberNames(g))
}

func TestCreateGroup_EmptyName(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)

	g, err := f.groups.CreateGroup(context.Background(), f.alice, "")
	require.Error(t, err)
	assert.Nil(t, g)
}

func TestJoinGroup_AddsInOrder(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	added, err := f.groups.JoinGroup(context.Background(), f.alice, g.ID, []string{"bob", "carol"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, added)

	members, err := f.groups.Members(context.Background(), f.alice, g.ID)
	require.NoError(t, err)
	got := make([]string, 0, len(members))
	for _, m := range members {
		got = append(got, m.Username)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, got, "members keep join order")
}

func TestJoinGroup_UnknownUserFailsWholeBatch(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	added, err := f.groups.JoinGroup(context.Background(), f.alice, g.ID, []string{"bob", "nobody"})
	require.ErrorIs(t, err, userdomain.ErrUserNotFound)
	assert.ErrorContains(t, err, "nobody")
	assert.Nil(t, added)

	// bob must not have been added either
	members, err := f.groups.Members(context.Background(), f.alice, g.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0].Username)
}

func TestJoinGroup_AlreadyMemberReported(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	_, err = f.groups.JoinGroup(context.Background(), f.alice, g.ID, []string{"alice"})
	require.ErrorIs(t, err, groupdomain.ErrAlreadyMember)
	assert.ErrorContains(t, err, "alice")
}

func TestJoinGroup_NonMemberActorForbidden(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	_, err = f.groups.JoinGroup(context.Background(), f.bob, g.ID, []string{"carol"})
	require.ErrorIs(t, err, groupdomain.ErrNotMember)
}

func TestJoinGroup_UnknownGroup(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)

	_, err := f.groups.JoinGroup(context.Background(), f.alice, uuid.New(), []string{"bob"})
	require.ErrorIs(t, err, groupdomain.ErrGroupNotFound)
}

func TestJoinGroup_EmptyUsernames(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	_, err = f.groups.JoinGroup(context.Background(), f.alice, g.ID, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateMembers_Remove(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)
	_, err = f.groups.JoinGroup(context.Background(), f.alice, g.ID, []string{"bob", "carol"})
	require.NoError(t, err)

	modified, err := f.groups.UpdateMembers(context.Background(), f.alice, g.ID,
		groupsvc.ActionRemove, []string{"bob"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, modified)

	members, err := f.groups.Members(context.Background(), f.alice, g.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "carol", members[1].Username)
}

func TestUpdateMembers_RemoveNonMemberFailsBatch(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)
	_, err = f.groups.JoinGroup(context.Background(), f.alice, g.ID, []string{"bob"})
	require.NoError(t, err)

	_, err = f.groups.UpdateMembers(context.Background(), f.alice, g.ID,
		groupsvc.ActionRemove, []string{"bob", "carol"})
	require.ErrorIs(t, err, groupdomain.ErrNotMember)
	assert.ErrorContains(t, err, "carol")

	members, err := f.groups.Members(context.Background(), f.alice, g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2, "bob stays when any removal fails")
}

func TestUpdateMembers_InvalidAction(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	_, err = f.groups.UpdateMembers(context.Background(), f.alice, g.ID,
		groupsvc.Action("promote"), []string{"bob"})
	require.ErrorIs(t, err, groupsvc.ErrInvalidAction)
}

func TestListGroups_OnlyMemberships(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	_, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)
	_, err = f.groups.CreateGroup(context.Background(), f.bob, "rent")
	require.NoError(t, err)

	groups, err := f.groups.ListGroups(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "trip", groups[0].Name)
}

func TestRenameGroup(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	renamed, err := f.groups.RenameGroup(context.Background(), f.alice, g.ID, "summer trip")
	require.NoError(t, err)
	assert.Equal(t, "summer trip", renamed.Name)
}

func TestDeleteGroup(t *testing.T) {
	t.Parallel()
	f := newGroupFixture(t)
	g, err := f.groups.CreateGroup(context.Background(), f.alice, "trip")
	require.NoError(t, err)

	require.NoError(t, f.groups.DeleteGroup(context.Background(), f.alice, g.ID))

	_, err = f.groups.Members(context.Background(), f.alice, g.ID)
	require.ErrorIs(t, err, groupdomain.ErrGroupNotFound)
}
