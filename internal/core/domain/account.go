package domain

import (
	"fmt"
	"time"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
	Equity    AccountType = "EQUITY"
)

// typeRule is the single table driving both posting direction and balance sign.
// Rules from https://en.wikipedia.org/wiki/Debits_and_credits:
// debits increase Asset and Expense accounts, credits increase
// Liability, Revenue and Equity accounts.
var typeRules = map[AccountType]struct{ debitsIncrease bool }{
	Asset:     {debitsIncrease: true},
	Expense:   {debitsIncrease: true},
	Liability: {debitsIncrease: false},
	Revenue:   {debitsIncrease: false},
	Equity:    {debitsIncrease: false},
}

// ValidAccountType reports whether t is a member of the closed account type set.
func ValidAccountType(t AccountType) bool {
	_, ok := typeRules[t]
	return ok
}

// Account is a financial account within the general ledger. It owns the ordered
// sequence of transactions posted against it; its balance is always derived from
// that history, never stored.
type Account struct {
	AccountNumber int         `json:"accountNumber"` // Unique key within a ledger, immutable
	Name          string      `json:"name"`
	Type          AccountType `json:"type"`

	transactions []Transaction
}

// NewAccount creates an empty account. The account type must be one of the
// closed set; anything else fails with ErrUnsupportedAccountType.
func NewAccount(accountNumber int, name string, accountType AccountType) (*Account, error) {
	if !ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedAccountType, accountType)
	}
	return &Account{
		AccountNumber: accountNumber,
		Name:          name,
		Type:          accountType,
	}, nil
}

// NewAccountFromHistory rehydrates an account from persisted transactions,
// preserving their recorded order. Used by repositories that load accounts
// back from storage.
func NewAccountFromHistory(accountNumber int, name string, accountType AccountType, transactions []Transaction) (*Account, error) {
	account, err := NewAccount(accountNumber, name, accountType)
	if err != nil {
		return nil, err
	}
	account.transactions = append(account.transactions, transactions...)
	return account, nil
}

// Transactions returns the posted history in recording order.
// The returned slice is a copy; the history itself is immutable.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Snapshot returns a detached copy of the account. Postings recorded against
// the original afterwards are not visible through the copy, so it can be read
// outside the ledger lock.
func (a *Account) Snapshot() *Account {
	return &Account{
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		Type:          a.Type,
		transactions:  a.Transactions(),
	}
}

// DebitCreditTotals folds the history into its unsigned debit and credit sums.
// These are the raw amounts a trial balance line reports, before any
// type-dependent sign adjustment.
func (a *Account) DebitCreditTotals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, txn := range a.transactions {
		debits = debits.Add(txn.Debit)
		credits = credits.Add(txn.Credit)
	}
	return debits, credits
}

// Balance derives the account balance as a pure fold over the transaction
// history: sum of debits minus sum of credits, sign-adjusted so that the side
// which increases this account type yields a positive balance.
func (a *Account) Balance() (decimal.Decimal, error) {
	rule, ok := typeRules[a.Type]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q on account %d", apperrors.ErrUnsupportedAccountType, a.Type, a.AccountNumber)
	}
	debits, credits := a.DebitCreditTotals()
	balance := debits.Sub(credits)
	if !rule.debitsIncrease {
		balance = balance.Neg()
	}
	return balance, nil
}

// RecordTransaction posts one movement against the account. A positive amount
// is recorded on the side that increases this account type, a negative amount
// on the side that decreases it; the stored value is always the magnitude.
// A zero amount fails with ErrZeroAmount before any mutation.
func (a *Account) RecordTransaction(amount decimal.Decimal, date time.Time, reference string) (Transaction, error) {
	if amount.IsZero() {
		return Transaction{}, fmt.Errorf("%w: account %d, reference %q", apperrors.ErrZeroAmount, a.AccountNumber, reference)
	}
	rule, ok := typeRules[a.Type]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q on account %d", apperrors.ErrUnsupportedAccountType, a.Type, a.AccountNumber)
	}

	side := Credit
	if rule.debitsIncrease == amount.IsPositive() {
		side = Debit
	}

	txn := Transaction{
		TransactionID: uuid.NewString(),
		Date:          date,
		Reference:     reference,
		AccountNumber: a.AccountNumber,
		CreatedAt:     time.Now().UTC(),
	}
	if side == Debit {
		txn.Debit = amount.Abs()
	} else {
		txn.Credit = amount.Abs()
	}

	a.transactions = append(a.transactions, txn)
	return txn, nil
}
