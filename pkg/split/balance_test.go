package split_test

import (
	"testing"

	"github.com/amirasaad/splitshare/pkg/split"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalances_CustomSplitScenario(t *testing.T) {
	t.Parallel()
	// Group {A, B}, expense 100.00 split {A:60, B:40}: fair share is 50,
	// so A is owed 10 and B owes 10.
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}

	entries := split.Balances(
		[]split.Member{a, b},
		[]split.Contribution{
			{UserID: a.ID, Amount: dec("60.00")},
			{UserID: b.ID, Amount: dec("40.00")},
		},
	)

	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].OwedTo)
	assert.True(t, entries[0].Amount.Equal(dec("10.00")))
	assert.Equal(t, "bob", entries[1].OwedBy)
	assert.True(t, entries[1].Amount.Equal(dec("10.00")))
}

func TestBalances_EqualSplitScenario(t *testing.T) {
	t.Parallel()
	// Group {A, B, C}, payer A fronts 90.00 on an equal split: fair share
	// 30, A is owed 60, B and C owe 30 each.
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}
	c := split.Member{ID: uuid.New(), Username: "carol"}

	entries := split.Balances(
		[]split.Member{a, b, c},
		[]split.Contribution{
			{UserID: a.ID, Amount: dec("90.00")},
			{UserID: b.ID, Amount: dec("0.00")},
			{UserID: c.ID, Amount: dec("0.00")},
		},
	)

	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].OwedTo)
	assert.True(t, entries[0].Amount.Equal(dec("60.00")))
	assert.Equal(t, "bob", entries[1].OwedBy)
	assert.True(t, entries[1].Amount.Equal(dec("30.00")))
	assert.Equal(t, "carol", entries[2].OwedBy)
	assert.True(t, entries[2].Amount.Equal(dec("30.00")))
}

func TestBalances_ZeroBalanceOmitted(t *testing.T) {
	t.Parallel()
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}

	entries := split.Balances(
		[]split.Member{a, b},
		[]split.Contribution{
			{UserID: a.ID, Amount: dec("50.00")},
			{UserID: b.ID, Amount: dec("50.00")},
		},
	)

	assert.Empty(t, entries)
}

func TestBalances_NoMembers(t *testing.T) {
	t.Parallel()
	entries := split.Balances(nil, []split.Contribution{
		{UserID: uuid.New(), Amount: dec("10.00")},
	})
	assert.Empty(t, entries)
}

func TestBalances_NoContributions(t *testing.T) {
	t.Parallel()
	a := split.Member{ID: uuid.New(), Username: "alice"}
	entries := split.Balances([]split.Member{a}, nil)
	assert.Empty(t, entries)
}

func TestBalances_AggregatesAcrossExpenses(t *testing.T) {
	t.Parallel()
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}

	// Two expenses: alice fronts 30, bob fronts 10. Total 40, fair 20.
	entries := split.Balances(
		[]split.Member{a, b},
		[]split.Contribution{
			{UserID: a.ID, Amount: dec("30.00")},
			{UserID: b.ID, Amount: dec("0.00")},
			{UserID: b.ID, Amount: dec("10.00")},
			{UserID: a.ID, Amount: dec("0.00")},
		},
	)

	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].OwedTo)
	assert.True(t, entries[0].Amount.Equal(dec("10.00")))
	assert.Equal(t, "bob", entries[1].OwedBy)
	assert.True(t, entries[1].Amount.Equal(dec("10.00")))
}

func TestBalances_SettlementIsZeroSumWithinRoundingResidual(t *testing.T) {
	t.Parallel()
	// 100.00 across three members does not divide evenly; the rounded
	// entries may carry a residual bounded by a cent per member.
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}
	c := split.Member{ID: uuid.New(), Username: "carol"}
	members := []split.Member{a, b, c}

	entries := split.Balances(members, []split.Contribution{
		{UserID: a.ID, Amount: dec("100.00")},
		{UserID: b.ID, Amount: dec("0.00")},
		{UserID: c.ID, Amount: dec("0.00")},
	})

	owedTo := decimal.Zero
	owedBy := decimal.Zero
	for _, e := range entries {
		require.True(t, e.OwedTo == "" || e.OwedBy == "", "entry must be directional")
		if e.OwedTo != "" {
			owedTo = owedTo.Add(e.Amount)
		} else {
			owedBy = owedBy.Add(e.Amount)
		}
	}
	residual := owedTo.Sub(owedBy).Abs()
	bound := dec("0.01").Mul(decimal.NewFromInt(int64(len(members))))
	assert.True(t, residual.LessThanOrEqual(bound),
		"residual %s exceeds %s", residual, bound)
}

func TestBalances_BankersRounding(t *testing.T) {
	t.Parallel()
	// fair share of 0.125 rounds to 0.12 under round-half-even.
	a := split.Member{ID: uuid.New(), Username: "alice"}
	b := split.Member{ID: uuid.New(), Username: "bob"}

	entries := split.Balances(
		[]split.Member{a, b},
		[]split.Contribution{
			{UserID: a.ID, Amount: dec("0.25")},
		},
	)

	require.Len(t, entries, 2)
	// alice paid 0.25, fair share 0.125, balance 0.125 -> 0.12
	assert.True(t, entries[0].Amount.Equal(dec("0.12")), "got %s", entries[0].Amount)
	assert.True(t, entries[1].Amount.Equal(dec("0.12")), "got %s", entries[1].Amount)
}
