package group

import (
	"context"

	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for group and membership data access.
// Member lists are always returned in join order.
type Repository interface {
	// Create inserts a new group record from a DTO.
	Create(ctx context.Context, create *dto.GroupCreate) error

	// Get retrieves a group with its ordered member list.
	// Returns nil without error when no such group exists.
	Get(ctx context.Context, id uuid.UUID) (*dto.GroupRead, error)

	// ListByMember retrieves all groups the given user belongs to.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error)

	// Update applies the non-nil fields of the update DTO.
	Update(ctx context.Context, id uuid.UUID, update *dto.GroupUpdate) error

	// Delete removes a group together with its memberships.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember appends a user to the group's member set.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error

	// RemoveMember removes a user from the group's member set.
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
}
