package domain

import "time"

// JournalEntry records one composite business event and the postings it
// produced across the ledger. The journal is append-only: entries are never
// updated or removed once recorded.
type JournalEntry struct {
	EntryID     string        `json:"entryID"` // Primary key (UUID)
	Date        time.Time     `json:"date"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	Postings    []Transaction `json:"postings"`
	CreatedAt   time.Time     `json:"createdAt"`
}
