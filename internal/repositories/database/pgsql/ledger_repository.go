package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
)

const pgUniqueViolation = "23505"

// PgxLedgerRepository persists the chart of accounts and their transaction
// histories in PostgreSQL. Accounts are rehydrated with their full history so
// domain balance derivation stays a pure fold over transactions.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new repository for ledger data.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// AddAccount inserts a new account row.
func (r *PgxLedgerRepository) AddAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (account_number, name, account_type, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountNumber,
		account.Name,
		string(account.Type),
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: number %d", apperrors.ErrDuplicateAccount, account.AccountNumber)
		}
		return fmt.Errorf("failed to save account %d: %w", account.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves one account with its transaction history.
func (r *PgxLedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber int) (*domain.Account, error) {
	query := `
		SELECT account_number, name, account_type
		FROM accounts
		WHERE account_number = $1;
	`
	var (
		number      int
		name        string
		accountType string
	)
	err := r.pool.QueryRow(ctx, query, accountNumber).Scan(&number, &name, &accountType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: number %d", apperrors.ErrUnknownAccount, accountNumber)
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountNumber, err)
	}

	transactions, err := r.findTransactionsByAccount(ctx, number)
	if err != nil {
		return nil, err
	}
	return domain.NewAccountFromHistory(number, name, domain.AccountType(accountType), transactions)
}

// FindAccountsByNumbers retrieves multiple accounts keyed by number. Missing
// numbers are absent from the result map.
func (r *PgxLedgerRepository) FindAccountsByNumbers(ctx context.Context, accountNumbers []int) (map[int]*domain.Account, error) {
	result := make(map[int]*domain.Account, len(accountNumbers))
	for _, number := range accountNumbers {
		account, err := r.FindAccountByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnknownAccount) {
				continue
			}
			return nil, err
		}
		result[number] = account
	}
	return result, nil
}

// ListAccounts retrieves every account with its history, ordered by number.
func (r *PgxLedgerRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT account_number, name, account_type
		FROM accounts
		ORDER BY account_number;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	type accountRow struct {
		number      int
		name        string
		accountType string
	}
	var accountRows []accountRow
	for rows.Next() {
		var row accountRow
		if err := rows.Scan(&row.number, &row.name, &row.accountType); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountRows = append(accountRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(accountRows))
	for _, row := range accountRows {
		transactions, err := r.findTransactionsByAccount(ctx, row.number)
		if err != nil {
			return nil, err
		}
		account, err := domain.NewAccountFromHistory(row.number, row.name, domain.AccountType(row.accountType), transactions)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// findTransactionsByAccount loads one account's history in recording order.
// The seq column is assigned monotonically as postings are inserted, so the
// rehydrated order always matches the order the postings were recorded in.
func (r *PgxLedgerRepository) findTransactionsByAccount(ctx context.Context, accountNumber int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_number, txn_date, reference, debit, credit, created_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY seq;
	`
	rows, err := r.pool.Query(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountNumber, err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var (
			txn           domain.Transaction
			debit, credit decimal.Decimal
		)
		if err := rows.Scan(&txn.TransactionID, &txn.AccountNumber, &txn.Date, &txn.Reference, &debit, &credit, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn.Debit = debit
		txn.Credit = credit
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return transactions, nil
}
