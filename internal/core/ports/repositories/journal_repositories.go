package repositories

import (
	"context"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
)

// JournalRepository is the append-only store of business events.
type JournalRepository interface {
	// AppendEntry records one business event together with the postings it
	// produced, as a single atomic write. A crash can never leave postings
	// persisted without their journal entry or the other way around.
	AppendEntry(ctx context.Context, entry domain.JournalEntry) error

	// ListEntries returns every journal entry in recording order.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
