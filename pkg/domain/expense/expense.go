// Package expense holds the expense and contribution entities together
// with the write-time invariants the ledger enforces: a strictly positive
// expense amount, a known split type, and non-negative contributions.
package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitType tags how an expense is divided among group members.
type SplitType string

const (
	// SplitEqual records the full amount on the payer and zero on every
	// other member.
	SplitEqual SplitType = "equal"
	// SplitCustom records caller-provided per-member amounts which must
	// sum exactly to the expense amount.
	SplitCustom SplitType = "custom"
)

var (
	// ErrExpenseNotFound is returned when an expense cannot be found in
	// the repository.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidAmount is returned for non-positive expense amounts.
	ErrInvalidAmount = errors.New("expense amount must be greater than zero")
	// ErrInvalidSplitType is returned for split types outside {equal, custom}.
	ErrInvalidSplitType = errors.New("invalid split type")
	// ErrNegativeContribution is returned for contributions below zero.
	ErrNegativeContribution = errors.New("contribution amount must not be negative")
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitCustom
}

// Expense is a single cost recorded against a group.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   SplitType       `json:"split_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Contribution records how much one user put toward one expense.
// Zero amounts are legal; the equal split writes them for non-payers.
type Contribution struct {
	ID        uuid.UUID       `json:"id"`
	ExpenseID uuid.UUID       `json:"expense_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// New creates an Expense after checking the amount and split type.
func New(groupID uuid.UUID, description string, amount decimal.Decimal, splitType SplitType) (*Expense, error) {
	if description == "" {
		return nil, errors.New("description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !splitType.Valid() {
		return nil, ErrInvalidSplitType
	}
	return &Expense{
		ID:          uuid.New(),
		GroupID:     groupID,
		Description: description,
		Amount:      amount,
		SplitType:   splitType,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NewContribution creates a Contribution after checking the amount.
func NewContribution(expenseID, userID uuid.UUID, amount decimal.Decimal) (*Contribution, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeContribution
	}
	return &Contribution{
		ID:        uuid.New(),
		ExpenseID: expenseID,
		UserID:    userID,
		Amount:    amount,
	}, nil
}
