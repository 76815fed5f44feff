package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
)

// PgxJournalRepository persists the append-only business event log in
// PostgreSQL. Postings are linked to their entry and reconstructed on read.
type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for journal data.
func NewJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{pool: pool}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// AppendEntry records one business event in a single database transaction:
// the postings, the entry and the links between them commit together, so a
// crash can never persist postings without their journal entry.
func (r *PgxJournalRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txnQuery := `
		INSERT INTO transactions (transaction_id, account_number, txn_date, reference, debit, credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, txn := range entry.Postings {
		if _, err := tx.Exec(ctx, txnQuery,
			txn.TransactionID,
			txn.AccountNumber,
			txn.Date,
			txn.Reference,
			txn.Debit,
			txn.Credit,
			txn.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
		}
	}

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, reference, description, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.Date,
		entry.Reference,
		entry.Description,
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", entry.EntryID, err)
	}

	linkQuery := `
		INSERT INTO journal_entry_transactions (entry_id, transaction_id, position)
		VALUES ($1, $2, $3);
	`
	for i, txn := range entry.Postings {
		if _, err := tx.Exec(ctx, linkQuery, entry.EntryID, txn.TransactionID, i); err != nil {
			return fmt.Errorf("failed to link posting %s to entry %s: %w", txn.TransactionID, entry.EntryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal entry: %w", err)
	}
	return nil
}

// ListEntries returns every journal entry with its postings, in recording order.
func (r *PgxJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, reference, description, created_at
		FROM journal_entries
		ORDER BY seq;
	`
	rows, err := r.pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(&entry.EntryID, &entry.Date, &entry.Reference, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entry rows: %w", err)
	}

	for i := range entries {
		postings, err := r.findPostings(ctx, entries[i].EntryID)
		if err != nil {
			return nil, err
		}
		entries[i].Postings = postings
	}
	return entries, nil
}

// findPostings loads the postings of one entry in posting order.
func (r *PgxJournalRepository) findPostings(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.account_number, t.txn_date, t.reference, t.debit, t.credit, t.created_at
		FROM journal_entry_transactions jet
		JOIN transactions t ON t.transaction_id = jet.transaction_id
		WHERE jet.entry_id = $1
		ORDER BY jet.position;
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query postings for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var postings []domain.Transaction
	for rows.Next() {
		var (
			txn           domain.Transaction
			debit, credit decimal.Decimal
		)
		if err := rows.Scan(&txn.TransactionID, &txn.AccountNumber, &txn.Date, &txn.Reference, &debit, &credit, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		txn.Debit = debit
		txn.Credit = credit
		postings = append(postings, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posting rows: %w", err)
	}
	return postings, nil
}
