package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/awbsmith/bookkeeper/internal/core/domain"
	"github.com/awbsmith/bookkeeper/internal/repositories/memory"
)

func newAccount(t *testing.T, number int, name string, accountType domain.AccountType) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(number, name, accountType)
	require.NoError(t, err)
	return account
}

func TestLedgerRepository_AddAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()

	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 1000, "Cash", domain.Asset)))

	account, err := repo.FindAccountByNumber(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, "Cash", account.Name)
}

func TestLedgerRepository_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()

	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 1000, "Cash", domain.Asset)))
	err := repo.AddAccount(ctx, newAccount(t, 1000, "Cash Again", domain.Asset))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
}

func TestLedgerRepository_FindUnknown(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()

	_, err := repo.FindAccountByNumber(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestLedgerRepository_FindAccountsByNumbers_SkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 1000, "Cash", domain.Asset)))

	found, err := repo.FindAccountsByNumbers(ctx, []int{1000, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, 1000)
	assert.NotContains(t, found, 9999)
}

func TestLedgerRepository_ListAccountsOrdered(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 7000, "Owner Equity", domain.Equity)))
	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 1000, "Cash", domain.Asset)))
	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 3002, "Sales Tax Owing", domain.Liability)))

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, 1000, accounts[0].AccountNumber)
	assert.Equal(t, 3002, accounts[1].AccountNumber)
	assert.Equal(t, 7000, accounts[2].AccountNumber)
}

func TestLedgerRepository_SharedPointerVisibility(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	require.NoError(t, repo.AddAccount(ctx, newAccount(t, 1000, "Cash", domain.Asset)))

	fetched, err := repo.FindAccountByNumber(ctx, 1000)
	require.NoError(t, err)
	_, err = fetched.RecordTransaction(decimal.NewFromInt(100), time.Now(), "ref")
	require.NoError(t, err)

	again, err := repo.FindAccountByNumber(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, again.Transactions(), 1, "postings through a fetched account must be visible to later reads")
}

func TestJournalRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewJournalRepository()

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, repo.AppendEntry(ctx, domain.JournalEntry{
		EntryID:   "e1",
		Reference: "inv-1",
		Postings: []domain.Transaction{
			{TransactionID: "t1", AccountNumber: 1000, Debit: decimal.NewFromInt(500)},
			{TransactionID: "t2", AccountNumber: 2000, Credit: decimal.NewFromInt(500)},
		},
	}))
	require.NoError(t, repo.AppendEntry(ctx, domain.JournalEntry{EntryID: "e2", Reference: "inv-2"}))

	entries, err = repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e1", entries[0].EntryID)
	assert.Len(t, entries[0].Postings, 2)
	assert.Equal(t, "e2", entries[1].EntryID)
}
