package split

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Member identifies one group member for balance reporting. The order of
// a member slice is the group's join order and is preserved in output.
type Member struct {
	ID       uuid.UUID
	Username string
}

// Contribution is the paid amount of one contribution row, detached from
// its expense.
type Contribution struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// BalanceEntry is one line of a settlement report. Exactly one of OwedTo
// and OwedBy is set: OwedTo names a member the group owes money to,
// OwedBy a member who owes the group.
type BalanceEntry struct {
	OwedTo string          `json:"owed_to,omitempty"`
	OwedBy string          `json:"owed_by,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// Balances computes each member's net position against the group's fair
// share and folds it into a directional owes/owed list.
//
// total is the exact sum over every contribution recorded for the group,
// fair share is total divided by the member count, and each member's
// balance is paid minus fair share rounded to 2 places with banker's
// rounding (round half to even). Members whose rounded balance is zero
// are omitted. Output order follows the member slice.
func Balances(members []Member, contributions []Contribution) []BalanceEntry {
	if len(members) == 0 {
		return []BalanceEntry{}
	}

	total := decimal.Zero
	paid := make(map[uuid.UUID]decimal.Decimal, len(members))
	for _, c := range contributions {
		total = total.Add(c.Amount)
		paid[c.UserID] = paid[c.UserID].Add(c.Amount)
	}
	fairShare := total.Div(decimal.NewFromInt(int64(len(members))))

	entries := make([]BalanceEntry, 0, len(members))
	for _, m := range members {
		balance := paid[m.ID].Sub(fairShare).RoundBank(2)
		switch {
		case balance.IsPositive():
			entries = append(entries, BalanceEntry{OwedTo: m.Username, Amount: balance})
		case balance.IsNegative():
			entries = append(entries, BalanceEntry{OwedBy: m.Username, Amount: balance.Abs()})
		}
	}
	return entries
}
