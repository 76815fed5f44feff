package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/awbsmith/bookkeeper/internal/core/domain"
)

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestNewAccount(t *testing.T) {
	account, err := domain.NewAccount(2000, "Acme", domain.Asset)
	require.NoError(t, err)
	assert.Equal(t, 2000, account.AccountNumber)
	assert.Equal(t, "Acme", account.Name)
	assert.Equal(t, domain.Asset, account.Type)
	assert.Empty(t, account.Transactions())
}

func TestNewAccount_UnsupportedType(t *testing.T) {
	_, err := domain.NewAccount(2000, "Acme", domain.AccountType("GOODWILL"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedAccountType)
}

func TestAccount_RecordTransaction_PostingSides(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		amount      decimal.Decimal
		wantSide    domain.EntrySide
	}{
		{"positive amount debits an asset", domain.Asset, decimal.NewFromInt(100), domain.Debit},
		{"negative amount credits an asset", domain.Asset, decimal.NewFromInt(-100), domain.Credit},
		{"positive amount debits an expense", domain.Expense, decimal.NewFromInt(100), domain.Debit},
		{"negative amount credits an expense", domain.Expense, decimal.NewFromInt(-100), domain.Credit},
		{"positive amount credits a liability", domain.Liability, decimal.NewFromInt(100), domain.Credit},
		{"negative amount debits a liability", domain.Liability, decimal.NewFromInt(-100), domain.Debit},
		{"positive amount credits revenue", domain.Revenue, decimal.NewFromInt(100), domain.Credit},
		{"negative amount debits revenue", domain.Revenue, decimal.NewFromInt(-100), domain.Debit},
		{"positive amount credits equity", domain.Equity, decimal.NewFromInt(100), domain.Credit},
		{"negative amount debits equity", domain.Equity, decimal.NewFromInt(-100), domain.Debit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := domain.NewAccount(5000, "test", tt.accountType)
			require.NoError(t, err)

			txn, err := account.RecordTransaction(tt.amount, testDate, "ref-1")
			require.NoError(t, err)

			assert.Equal(t, tt.wantSide, txn.Side())
			// The recorded value is always the magnitude of the movement.
			assert.True(t, txn.Amount().Equal(tt.amount.Abs()), "recorded %s, want %s", txn.Amount(), tt.amount.Abs())
			assert.Equal(t, 5000, txn.AccountNumber)
			assert.Equal(t, "ref-1", txn.Reference)
			assert.Equal(t, testDate, txn.Date)
			assert.NotEmpty(t, txn.TransactionID)
			assert.Len(t, account.Transactions(), 1)
		})
	}
}

func TestAccount_RecordTransaction_ZeroAmount(t *testing.T) {
	account, err := domain.NewAccount(2000, "Acme", domain.Asset)
	require.NoError(t, err)

	_, err = account.RecordTransaction(decimal.Zero, testDate, "ref-1")
	assert.ErrorIs(t, err, apperrors.ErrZeroAmount)
	assert.Empty(t, account.Transactions(), "a rejected posting must leave the history unchanged")
}

func TestAccount_Balance_SignRules(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		amounts     []int64
		want        int64
	}{
		{"asset increases on positive postings", domain.Asset, []int64{100, 50}, 150},
		{"asset decreases on negative postings", domain.Asset, []int64{100, -30}, 70},
		{"expense increases on positive postings", domain.Expense, []int64{100, 25}, 125},
		{"expense decreases on negative postings", domain.Expense, []int64{100, -40}, 60},
		{"liability increases on positive postings", domain.Liability, []int64{200, 13}, 213},
		{"liability decreases on negative postings", domain.Liability, []int64{200, -50}, 150},
		{"revenue increases on positive postings", domain.Revenue, []int64{500}, 500},
		{"equity increases on positive postings", domain.Equity, []int64{1000, -100}, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := domain.NewAccount(5000, "test", tt.accountType)
			require.NoError(t, err)

			for _, amount := range tt.amounts {
				_, err := account.RecordTransaction(decimal.NewFromInt(amount), testDate, "ref")
				require.NoError(t, err)
			}

			balance, err := account.Balance()
			require.NoError(t, err)
			assert.True(t, balance.Equal(decimal.NewFromInt(tt.want)), "balance %s, want %d", balance, tt.want)
		})
	}
}

// The balance after N transactions must equal the balance after N-1
// transactions combined with the Nth movement: a pure fold over the history.
func TestAccount_Balance_FoldConsistency(t *testing.T) {
	amounts := []int64{100, -30, 250, -70, 15}

	for _, accountType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Revenue, domain.Expense, domain.Equity} {
		t.Run(string(accountType), func(t *testing.T) {
			account, err := domain.NewAccount(5000, "test", accountType)
			require.NoError(t, err)

			incremental := decimal.Zero
			for _, amount := range amounts {
				_, err := account.RecordTransaction(decimal.NewFromInt(amount), testDate, "ref")
				require.NoError(t, err)
				incremental = incremental.Add(decimal.NewFromInt(amount))

				balance, err := account.Balance()
				require.NoError(t, err)
				assert.True(t, balance.Equal(incremental), "after %d postings: fold %s, incremental %s", len(account.Transactions()), balance, incremental)
			}

			// Replaying the recorded history into a fresh account yields the
			// same balance as the incrementally built one.
			replayed, err := domain.NewAccountFromHistory(5000, "test", accountType, account.Transactions())
			require.NoError(t, err)
			replayedBalance, err := replayed.Balance()
			require.NoError(t, err)
			original, err := account.Balance()
			require.NoError(t, err)
			assert.True(t, replayedBalance.Equal(original))
		})
	}
}

func TestAccount_DebitCreditTotals(t *testing.T) {
	account, err := domain.NewAccount(2000, "Acme", domain.Asset)
	require.NoError(t, err)

	_, err = account.RecordTransaction(decimal.NewFromInt(500), testDate, "inv-1")
	require.NoError(t, err)
	_, err = account.RecordTransaction(decimal.NewFromInt(-50), testDate, "pay-1")
	require.NoError(t, err)

	debits, credits := account.DebitCreditTotals()
	assert.True(t, debits.Equal(decimal.NewFromInt(500)))
	assert.True(t, credits.Equal(decimal.NewFromInt(50)))
}

func TestAccount_Snapshot_Detached(t *testing.T) {
	account, err := domain.NewAccount(1000, "Cash", domain.Asset)
	require.NoError(t, err)
	_, err = account.RecordTransaction(decimal.NewFromInt(100), testDate, "ref-1")
	require.NoError(t, err)

	snapshot := account.Snapshot()

	// Postings against the original after the copy was taken must not show
	// through it.
	_, err = account.RecordTransaction(decimal.NewFromInt(50), testDate, "ref-2")
	require.NoError(t, err)

	assert.Equal(t, account.AccountNumber, snapshot.AccountNumber)
	assert.Equal(t, account.Name, snapshot.Name)
	assert.Equal(t, account.Type, snapshot.Type)
	assert.Len(t, snapshot.Transactions(), 1)
	assert.Len(t, account.Transactions(), 2)

	balance, err := snapshot.Balance()
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)))
}

func TestAccount_TransactionsReturnsCopy(t *testing.T) {
	account, err := domain.NewAccount(2000, "Acme", domain.Asset)
	require.NoError(t, err)
	_, err = account.RecordTransaction(decimal.NewFromInt(100), testDate, "ref")
	require.NoError(t, err)

	history := account.Transactions()
	history[0].Debit = decimal.NewFromInt(999)

	balance, err := account.Balance()
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "mutating the returned slice must not affect the account")
}
