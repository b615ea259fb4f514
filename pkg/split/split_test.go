package split_test

import (
	"testing"

	"github.com/amirasaad/splitshare/pkg/split"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEqual_FullAmountToPayer(t *testing.T) {
	t.Parallel()
	payer := uuid.New()
	others := []uuid.UUID{uuid.New(), uuid.New()}
	members := append([]uuid.UUID{payer}, others...)

	shares := split.Equal(dec("90.00"), payer, members)

	require.Len(t, shares, 3, "one share per group member, not two")
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
		if s.UserID == payer {
			assert.True(t, s.Amount.Equal(dec("90.00")))
		} else {
			assert.True(t, s.Amount.IsZero())
		}
	}
	assert.True(t, total.Equal(dec("90.00")), "shares must sum to the expense amount")
}

func TestEqual_SingleMember(t *testing.T) {
	t.Parallel()
	payer := uuid.New()
	shares := split.Equal(dec("10.00"), payer, []uuid.UUID{payer})
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Amount.Equal(dec("10.00")))
}

func TestCustom(t *testing.T) {
	t.Parallel()
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		amount  decimal.Decimal
		entries []split.Entry
		wantErr error
	}{
		{
			name:   "exact sum accepted",
			amount: dec("100.00"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("60.00")},
				{UserID: b, Amount: dec("40.00")},
			},
		},
		{
			name:    "empty entries rejected",
			amount:  dec("100.00"),
			entries: nil,
			wantErr: split.ErrMissingContributions,
		},
		{
			name:   "sum below amount rejected",
			amount: dec("100.00"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("60.00")},
				{UserID: b, Amount: dec("39.99")},
			},
			wantErr: split.ErrAmountMismatch,
		},
		{
			name:   "sum above amount rejected",
			amount: dec("100.00"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("60.00")},
				{UserID: b, Amount: dec("40.01")},
			},
			wantErr: split.ErrAmountMismatch,
		},
		{
			name:   "negative entry rejected even when sum matches",
			amount: dec("100.00"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("110.00")},
				{UserID: b, Amount: dec("-10.00")},
			},
			wantErr: split.ErrNegativeAmount,
		},
		{
			name:   "zero entry allowed",
			amount: dec("50.00"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("50.00")},
				{UserID: b, Amount: dec("0.00")},
			},
		},
		{
			name:   "no float tolerance on cent boundaries",
			amount: dec("0.30"),
			entries: []split.Entry{
				{UserID: a, Amount: dec("0.10")},
				{UserID: b, Amount: dec("0.20")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			shares, err := split.Custom(tt.amount, tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, shares)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.entries))
			total := decimal.Zero
			for i, s := range shares {
				assert.Equal(t, tt.entries[i].UserID, s.UserID)
				total = total.Add(s.Amount)
			}
			assert.True(t, total.Equal(tt.amount))
		})
	}
}

func TestSum(t *testing.T) {
	t.Parallel()
	entries := []split.Entry{
		{UserID: uuid.New(), Amount: dec("0.1")},
		{UserID: uuid.New(), Amount: dec("0.2")},
	}
	assert.True(t, split.Sum(entries).Equal(dec("0.3")))
	assert.True(t, split.Sum(nil).IsZero())
}
