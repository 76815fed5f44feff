package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
	portssvc "github.com/awbsmith/bookkeeper/internal/core/ports/services"
	"github.com/awbsmith/bookkeeper/internal/middleware"
)

// Well-known account numbers seeded or referenced by the engine. These are
// engine-level constants, not user data.
const (
	CashRegisterAcctNo  = 1000
	SalesTaxPaidAcctNo  = 3001
	SalesTaxOwingAcctNo = 3002
	OwnerEquityAcctNo   = 7000
)

// businessService implements the accounting engine facade over one ledger and
// one journal. Each business operation is a critical section: the ledger is
// locked for the full multi-account posting sequence, and every participant
// account and amount is validated before the first posting is applied.
type businessService struct {
	ledgerRepo  portsrepo.LedgerRepository
	journalRepo portsrepo.JournalRepository

	mu sync.Mutex
}

// NewBusinessService creates the accounting engine over the given stores.
// The ledger and journal are shared collaborators; they outlive individual
// calls and are mutated by every posting operation.
func NewBusinessService(ledgerRepo portsrepo.LedgerRepository, journalRepo portsrepo.JournalRepository) portssvc.AccountingSvc {
	return &businessService{
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
	}
}

// Ensure businessService implements the portssvc.AccountingSvc interface
var _ portssvc.AccountingSvc = (*businessService)(nil)

// SetUpAccounting constructs the engine and seeds the three always-present
// accounts: Cash (Asset), Sales Tax Owing (Liability) and Owner Equity
// (Equity). Seeding tolerates a ledger that already carries them, so the
// engine can be brought up repeatedly against a persistent store.
func SetUpAccounting(ctx context.Context, ledgerRepo portsrepo.LedgerRepository, journalRepo portsrepo.JournalRepository) (portssvc.AccountingSvc, error) {
	svc := NewBusinessService(ledgerRepo, journalRepo)

	seeds := []struct {
		number int
		name   string
		kind   domain.AccountType
	}{
		{CashRegisterAcctNo, "Cash", domain.Asset},
		{SalesTaxOwingAcctNo, "Sales Tax Owing", domain.Liability},
		{OwnerEquityAcctNo, "Owner Equity", domain.Equity},
	}
	for _, seed := range seeds {
		if _, err := svc.CreateNewAccount(ctx, seed.number, seed.name, seed.kind); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateAccount) {
				continue
			}
			return nil, fmt.Errorf("failed to seed account %d: %w", seed.number, err)
		}
	}
	return svc, nil
}

// posting is one intended movement of a business event before it is applied.
type posting struct {
	accountNumber int
	amount        decimal.Decimal
}

// postEvent applies one business event atomically from the caller's
// perspective: validate every amount and resolve every participant account
// up front, then post and append a journal entry carrying the created
// transactions. The journal append is the single persistence boundary for
// the whole event. Any validation failure aborts before the first write.
func (s *businessService) postEvent(ctx context.Context, description string, date time.Time, reference string, postings []posting) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Fail before first write: amounts first, then account resolution.
	accountNumbers := make([]int, 0, len(postings))
	for _, p := range postings {
		if p.amount.IsZero() {
			return fmt.Errorf("%w: account %d, reference %q", apperrors.ErrZeroAmount, p.accountNumber, reference)
		}
		accountNumbers = append(accountNumbers, p.accountNumber)
	}

	accounts, err := s.ledgerRepo.FindAccountsByNumbers(ctx, uniqueInts(accountNumbers))
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()), slog.String("reference", reference))
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, number := range accountNumbers {
		if _, found := accounts[number]; !found {
			return fmt.Errorf("%w: number %d", apperrors.ErrUnknownAccount, number)
		}
	}

	transactions := make([]domain.Transaction, 0, len(postings))
	for _, p := range postings {
		txn, err := accounts[p.accountNumber].RecordTransaction(p.amount, date, reference)
		if err != nil {
			// Unreachable after the validations above; surface it rather
			// than leave a half-posted event unreported.
			logger.Error("Posting failed after validation", slog.String("error", err.Error()), slog.Int("account_number", p.accountNumber), slog.String("reference", reference))
			return fmt.Errorf("posting to account %d failed: %w", p.accountNumber, err)
		}
		transactions = append(transactions, txn)
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Date:        date,
		Reference:   reference,
		Description: description,
		Postings:    transactions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.journalRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Failed to persist business event", slog.String("error", err.Error()), slog.String("reference", reference))
		return fmt.Errorf("failed to persist business event: %w", err)
	}

	logger.Info("Business event posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("description", description),
		slog.String("reference", reference),
		slog.Int("postings", len(transactions)),
	)
	return nil
}

// CreateNewAccount inserts a new account into the ledger.
func (s *businessService) CreateNewAccount(ctx context.Context, accountNumber int, name string, accountType domain.AccountType) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := domain.NewAccount(accountNumber, name, accountType)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledgerRepo.AddAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateAccount) {
			logger.Error("Failed to add account", slog.String("error", err.Error()), slog.Int("account_number", accountNumber))
		}
		return nil, err
	}

	logger.Info("Account created", slog.Int("account_number", accountNumber), slog.String("name", name), slog.String("type", string(accountType)))
	return account.Snapshot(), nil
}

// GetAccount retrieves one account with its transaction history. The ledger
// lock is held for the read and a detached copy is returned, so the caller
// never shares mutable history with an in-flight posting.
func (s *businessService) GetAccount(ctx context.Context, accountNumber int) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.ledgerRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return account.Snapshot(), nil
}

// GetStatementFor returns the account whose history and derived balance make
// up its statement of account, as a point-in-time copy.
func (s *businessService) GetStatementFor(ctx context.Context, accountNumber int) (*domain.Account, error) {
	return s.GetAccount(ctx, accountNumber)
}

// GetChartOfAccounts returns every account in the ledger as detached copies
// taken under the ledger lock.
func (s *businessService) GetChartOfAccounts(ctx context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]*domain.Account, len(accounts))
	for i, account := range accounts {
		snapshots[i] = account.Snapshot()
	}
	return snapshots, nil
}

// GetJournal returns the append-only business event log.
func (s *businessService) GetJournal(ctx context.Context) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListEntries(ctx)
}

// GetTrialBalance computes a trial balance snapshot over the current ledger.
// The ledger lock is held so the snapshot cannot interleave with a posting.
func (s *businessService) GetTrialBalance(ctx context.Context) (domain.TrialBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		return domain.TrialBalance{}, fmt.Errorf("failed to list accounts for trial balance: %w", err)
	}
	return domain.GenerateTrialBalance(accounts), nil
}

// RecordTaxFreeSale posts amount to Cash and to the customer account.
func (s *businessService) RecordTaxFreeSale(ctx context.Context, customerAccountNo int, amount decimal.Decimal, date time.Time, reference string) error {
	return s.postEvent(ctx, "Tax free sale", date, reference, []posting{
		{CashRegisterAcctNo, amount},
		{customerAccountNo, amount},
	})
}

// RecordTaxableSale posts net+tax to Cash, net to the customer account and
// tax to Sales Tax Owing.
func (s *businessService) RecordTaxableSale(ctx context.Context, customerAccountNo int, netAmount, salesTaxAmount decimal.Decimal, date time.Time, reference string) error {
	return s.postEvent(ctx, "Taxable sale", date, reference, []posting{
		{CashRegisterAcctNo, netAmount.Add(salesTaxAmount)},
		{customerAccountNo, netAmount},
		{SalesTaxOwingAcctNo, salesTaxAmount},
	})
}

// RecordPurchaseFrom posts net+tax owing to the supplier and net to the asset
// account. Recoverable input tax reduces the Sales Tax Owing liability, so a
// positive tax amount is posted there negatively.
func (s *businessService) RecordPurchaseFrom(ctx context.Context, supplierAccountNo, assetAccountNo int, netAmount, salesTaxAmount decimal.Decimal, date time.Time, reference string) error {
	postings := make([]posting, 0, 3)
	if salesTaxAmount.IsPositive() {
		postings = append(postings, posting{SalesTaxOwingAcctNo, salesTaxAmount.Neg()})
	}
	postings = append(postings,
		posting{supplierAccountNo, netAmount.Add(salesTaxAmount)},
		posting{assetAccountNo, netAmount},
	)
	return s.postEvent(ctx, "Purchase", date, reference, postings)
}

// RecordPaymentTo reduces Cash and the recipient account by amount.
func (s *businessService) RecordPaymentTo(ctx context.Context, recipientAccountNo int, amount decimal.Decimal, date time.Time, reference string) error {
	return s.postEvent(ctx, "Payment", date, reference, []posting{
		{CashRegisterAcctNo, amount.Neg()},
		{recipientAccountNo, amount.Neg()},
	})
}

// RecordCashInvestmentBy posts amount to the named account and to Cash.
func (s *businessService) RecordCashInvestmentBy(ctx context.Context, accountNo int, amount decimal.Decimal, date time.Time, reference string) error {
	return s.postEvent(ctx, "Cash investment", date, reference, []posting{
		{accountNo, amount},
		{CashRegisterAcctNo, amount},
	})
}

// RecordCashInjectionByOwner posts amount to Owner Equity and to Cash.
func (s *businessService) RecordCashInjectionByOwner(ctx context.Context, amount decimal.Decimal, date time.Time, reference string) error {
	return s.postEvent(ctx, "Cash injection by owner", date, reference, []posting{
		{OwnerEquityAcctNo, amount},
		{CashRegisterAcctNo, amount},
	})
}

// uniqueInts returns a slice containing only the unique ints from the input.
func uniqueInts(input []int) []int {
	seen := make(map[int]struct{}, len(input))
	result := make([]int, 0, len(input))
	for _, n := range input {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			result = append(result, n)
		}
	}
	return result
}
