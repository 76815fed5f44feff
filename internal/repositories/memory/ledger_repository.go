package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
)

// LedgerRepository is an in-process general ledger keyed by account number.
// Accounts are shared by pointer: postings recorded through an account
// returned from a lookup are immediately visible to subsequent reads.
type LedgerRepository struct {
	mu       sync.RWMutex
	accounts map[int]*domain.Account
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		accounts: make(map[int]*domain.Account),
	}
}

// Ensure LedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// AddAccount inserts a new account into the ledger.
func (r *LedgerRepository) AddAccount(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountNumber]; exists {
		return fmt.Errorf("%w: number %d", apperrors.ErrDuplicateAccount, account.AccountNumber)
	}
	r.accounts[account.AccountNumber] = account
	return nil
}

// FindAccountByNumber retrieves a specific account.
func (r *LedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber int) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[accountNumber]
	if !exists {
		return nil, fmt.Errorf("%w: number %d", apperrors.ErrUnknownAccount, accountNumber)
	}
	return account, nil
}

// FindAccountsByNumbers retrieves multiple accounts keyed by number.
// Missing numbers are absent from the result map.
func (r *LedgerRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []int) (map[int]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int]*domain.Account, len(accountNumbers))
	for _, number := range accountNumbers {
		if account, exists := r.accounts[number]; exists {
			result[number] = account
		}
	}
	return result, nil
}

// ListAccounts returns every account ordered by account number.
func (r *LedgerRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
	return accounts, nil
}
