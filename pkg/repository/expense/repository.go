package expense

import (
	"context"

	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for expense and contribution data
// access operations.
type Repository interface {
	// Create inserts a new expense record from a DTO.
	Create(ctx context.Context, create *dto.ExpenseCreate) error

	// Get retrieves an expense with its contributions.
	// Returns nil without error when no such expense exists.
	Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error)

	// ListByGroup retrieves a group's expenses ordered by creation time,
	// each with its contributions.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.ExpenseRead, error)

	// Update applies the non-nil fields of the update DTO.
	Update(ctx context.Context, id uuid.UUID, update *dto.ExpenseUpdate) error

	// Delete removes an expense together with its contributions.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateContributions inserts contribution rows for an expense.
	CreateContributions(ctx context.Context, creates []*dto.ContributionCreate) error

	// ReplaceContributions deletes an expense's contribution set and
	// inserts the given rows in its place.
	ReplaceContributions(ctx context.Context, expenseID uuid.UUID, creates []*dto.ContributionCreate) error

	// ListContributionsByGroup retrieves every contribution recorded
	// against any expense of the group.
	ListContributionsByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.ContributionRead, error)
}
