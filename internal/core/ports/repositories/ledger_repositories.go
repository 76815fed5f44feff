package repositories

import (
	"context"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
)

// LedgerReader defines read operations over the chart of accounts.
type LedgerReader interface {
	// FindAccountByNumber retrieves a specific account with its full
	// transaction history. Returns apperrors.ErrUnknownAccount when the
	// number is not in the ledger.
	FindAccountByNumber(ctx context.Context, accountNumber int) (*domain.Account, error)

	// FindAccountsByNumbers retrieves multiple accounts keyed by number.
	// Missing numbers are simply absent from the result map.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []int) (map[int]*domain.Account, error)

	// ListAccounts retrieves every account in the ledger.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// LedgerWriter defines write operations over the chart of accounts.
// Postings are not written through the ledger: they travel inside the journal
// entry of the business event that produced them, so one event is one write.
type LedgerWriter interface {
	// AddAccount inserts a new account. Returns apperrors.ErrDuplicateAccount
	// when the account number is already taken.
	AddAccount(ctx context.Context, account *domain.Account) error
}

// LedgerRepository combines read and write access to the general ledger.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
