package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCreate represents the data needed to persist a new expense.
type ExpenseCreate struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"group_id"`
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   string          `json:"split_type" validate:"required,oneof=equal custom"`
}

// ExpenseUpdate represents the fields that can change on an existing
// expense. All fields are optional; a nil field is left untouched.
type ExpenseUpdate struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	SplitType   *string          `json:"split_type,omitempty" validate:"omitempty,oneof=equal custom"`
}

// ContributionCreate represents one contribution row to persist.
type ContributionCreate struct {
	ID        uuid.UUID       `json:"id"`
	ExpenseID uuid.UUID       `json:"expense_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ContributionRead represents a read-optimized view of a contribution.
type ContributionRead struct {
	ID       uuid.UUID       `json:"id"`
	UserID   uuid.UUID       `json:"user_id"`
	Username string          `json:"username"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseRead represents a read-optimized view of an expense including
// its contribution set.
type ExpenseRead struct {
	ID            uuid.UUID          `json:"id"`
	GroupID       uuid.UUID          `json:"group_id"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	SplitType     string             `json:"split_type"`
	Contributions []ContributionRead `json:"contributions"`
	CreatedAt     time.Time          `json:"created_at"`
}
