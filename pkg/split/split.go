// Package split computes per-member contribution sets and settlement
// balances for group expenses. All arithmetic is exact decimal; binary
// floating point never touches an amount.
package split

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingContributions is returned when a custom split carries no
	// contribution entries.
	ErrMissingContributions = errors.New("contributions are required for a custom split")
	// ErrAmountMismatch is returned when custom contributions do not sum
	// exactly to the expense amount.
	ErrAmountMismatch = errors.New("contributions do not match the total amount")
	// ErrNegativeAmount is returned when a contribution entry is below zero.
	ErrNegativeAmount = errors.New("contribution amount must not be negative")
)

// Share is one member's computed contribution toward an expense.
type Share struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// Entry is a resolved custom-split input: a group member and the amount
// they put in.
type Entry struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// Equal materializes the equal-split contribution set: the payer's share
// carries the full amount and every other member gets a zero share, so
// the set records who fronted the money. One share is produced per group
// member, never just two.
func Equal(amount decimal.Decimal, payerID uuid.UUID, memberIDs []uuid.UUID) []Share {
	shares := make([]Share, 0, len(memberIDs))
	for _, id := range memberIDs {
		s := Share{UserID: id, Amount: decimal.Zero}
		if id == payerID {
			s.Amount = amount
		}
		shares = append(shares, s)
	}
	return shares
}

// Custom materializes a custom contribution set. Entries must be present,
// non-negative, and sum exactly (decimal equality, no tolerance) to the
// expense amount.
func Custom(amount decimal.Decimal, entries []Entry) ([]Share, error) {
	if len(entries) == 0 {
		return nil, ErrMissingContributions
	}
	for _, e := range entries {
		if e.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}
	if !Sum(entries).Equal(amount) {
		return nil, ErrAmountMismatch
	}
	shares := make([]Share, 0, len(entries))
	for _, e := range entries {
		shares = append(shares, Share{UserID: e.UserID, Amount: e.Amount})
	}
	return shares, nil
}

// Sum returns the exact decimal sum of the entries' amounts.
func Sum(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
