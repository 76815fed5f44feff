package services

import (
	"context"
	"time"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountingSvc is the business facade over one general ledger and one
// journal. Each Record* method represents a single real-world business event
// and posts a matched set of debit/credit entries across two or more accounts,
// all-or-nothing: every participant account and amount is validated before the
// first posting is applied.
type AccountingSvc interface {
	// CreateNewAccount inserts a new account into the ledger. Fails with
	// apperrors.ErrDuplicateAccount if the number already exists.
	CreateNewAccount(ctx context.Context, accountNumber int, name string, accountType domain.AccountType) (*domain.Account, error)

	// GetAccount retrieves one account with its transaction history.
	GetAccount(ctx context.Context, accountNumber int) (*domain.Account, error)

	// GetStatementFor is an alias of GetAccount kept for report consumers:
	// a statement of account is the account's history plus derived balance.
	GetStatementFor(ctx context.Context, accountNumber int) (*domain.Account, error)

	// GetChartOfAccounts returns every account in the ledger.
	GetChartOfAccounts(ctx context.Context) ([]*domain.Account, error)

	// GetJournal returns the append-only business event log.
	GetJournal(ctx context.Context) ([]domain.JournalEntry, error)

	// GetTrialBalance computes a point-in-time trial balance snapshot.
	GetTrialBalance(ctx context.Context) (domain.TrialBalance, error)

	// RecordTaxFreeSale posts amount to Cash and to the customer account.
	RecordTaxFreeSale(ctx context.Context, customerAccountNo int, amount decimal.Decimal, date time.Time, reference string) error

	// RecordTaxableSale posts net+tax to Cash, net to the customer account
	// and tax to Sales Tax Owing.
	RecordTaxableSale(ctx context.Context, customerAccountNo int, netAmount, salesTaxAmount decimal.Decimal, date time.Time, reference string) error

	// RecordPurchaseFrom posts net+tax owing to the supplier, net to the
	// asset account and, when tax is positive, deducts the recoverable tax
	// from Sales Tax Owing.
	RecordPurchaseFrom(ctx context.Context, supplierAccountNo, assetAccountNo int, netAmount, salesTaxAmount decimal.Decimal, date time.Time, reference string) error

	// RecordPaymentTo reduces Cash and the recipient account by amount.
	RecordPaymentTo(ctx context.Context, recipientAccountNo int, amount decimal.Decimal, date time.Time, reference string) error

	// RecordCashInvestmentBy posts amount to the named account and to Cash.
	RecordCashInvestmentBy(ctx context.Context, accountNo int, amount decimal.Decimal, date time.Time, reference string) error

	// RecordCashInjectionByOwner posts amount to Owner Equity and to Cash.
	RecordCashInjectionByOwner(ctx context.Context, amount decimal.Decimal, date time.Time, reference string) error
}
