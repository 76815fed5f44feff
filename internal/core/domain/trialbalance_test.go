package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
)

func mustAccount(t *testing.T, number int, name string, accountType domain.AccountType) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(number, name, accountType)
	require.NoError(t, err)
	return account
}

func mustRecord(t *testing.T, account *domain.Account, amount int64, reference string) {
	t.Helper()
	_, err := account.RecordTransaction(decimal.NewFromInt(amount), testDate, reference)
	require.NoError(t, err)
}

func TestGenerateTrialBalance(t *testing.T) {
	cash := mustAccount(t, 1000, "Cash", domain.Asset)
	equity := mustAccount(t, 7000, "Owner Equity", domain.Equity)

	// Paired postings of a single owner injection event.
	mustRecord(t, cash, 1000, "seed")
	mustRecord(t, equity, 1000, "seed")

	tb := domain.GenerateTrialBalance([]*domain.Account{equity, cash})

	require.Len(t, tb.LineItems, 2)
	// Ordered by account number regardless of input order.
	assert.Equal(t, 1000, tb.LineItems[0].AccountNumber)
	assert.Equal(t, 7000, tb.LineItems[1].AccountNumber)

	// Line items carry the unsigned raw totals, not the signed balance.
	assert.True(t, tb.LineItems[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.LineItems[0].Credit.IsZero())
	assert.Equal(t, "Cash", tb.LineItems[0].AccountName)
	assert.Equal(t, domain.Asset, tb.LineItems[0].AccountType)

	assert.True(t, tb.LineItems[1].Debit.IsZero())
	assert.True(t, tb.LineItems[1].Credit.Equal(decimal.NewFromInt(1000)))

	assert.True(t, tb.TotalDebitAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.TotalCreditAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tb.IsBalanced)
}

func TestGenerateTrialBalance_Unbalanced(t *testing.T) {
	cash := mustAccount(t, 1000, "Cash", domain.Asset)
	mustRecord(t, cash, 500, "orphan")

	tb := domain.GenerateTrialBalance([]*domain.Account{cash})

	assert.False(t, tb.IsBalanced)
	assert.True(t, tb.TotalDebitAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, tb.TotalCreditAmount.IsZero())
}

func TestGenerateTrialBalance_Empty(t *testing.T) {
	tb := domain.GenerateTrialBalance(nil)

	assert.Empty(t, tb.LineItems)
	assert.True(t, tb.TotalDebitAmount.IsZero())
	assert.True(t, tb.TotalCreditAmount.IsZero())
	assert.True(t, tb.IsBalanced)
}

// A generated trial balance is a snapshot: postings applied afterwards must
// not retroactively change it.
func TestGenerateTrialBalance_Snapshot(t *testing.T) {
	cash := mustAccount(t, 1000, "Cash", domain.Asset)
	equity := mustAccount(t, 7000, "Owner Equity", domain.Equity)
	mustRecord(t, cash, 1000, "seed")
	mustRecord(t, equity, 1000, "seed")

	before := domain.GenerateTrialBalance([]*domain.Account{cash, equity})

	mustRecord(t, cash, 250, "later")
	mustRecord(t, equity, 250, "later")

	assert.True(t, before.TotalDebitAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, before.LineItems[0].Debit.Equal(decimal.NewFromInt(1000)))

	after := domain.GenerateTrialBalance([]*domain.Account{cash, equity})
	assert.True(t, after.TotalDebitAmount.Equal(decimal.NewFromInt(1250)))
	assert.True(t, after.IsBalanced)
}
