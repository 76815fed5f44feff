package memory

import (
	"context"
	"sync"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
	portsrepo "github.com/awbsmith/bookkeeper/internal/core/ports/repositories"
)

// JournalRepository is an in-process append-only journal.
type JournalRepository struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
}

// NewJournalRepository creates an empty in-memory journal.
func NewJournalRepository() *JournalRepository {
	return &JournalRepository{}
}

// Ensure JournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*JournalRepository)(nil)

// AppendEntry records one business event. The entry's postings already live
// in the shared in-memory accounts, so the append itself is the only write.
func (r *JournalRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

// ListEntries returns every journal entry in recording order.
func (r *JournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.JournalEntry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}
