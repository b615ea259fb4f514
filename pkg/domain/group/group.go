package group

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrGroupNotFound is returned when a group cannot be found in the
	// repository.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotMember is returned when a user acts on a group they do not
	// belong to, or is named in a split but is outside the group.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrAlreadyMember is returned when adding a user who is already in
	// the member set.
	ErrAlreadyMember = errors.New("user is already a member of the group")
)

// Group is a named collection of users sharing expenses.
type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created"`
}

// New creates a Group with the given name.
func New(name string) (*Group, error) {
	if name == "" {
		return nil, errors.New("group name cannot be empty")
	}
	return &Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
