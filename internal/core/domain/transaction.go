package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a transaction was posted as a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Transaction is a single immutable debit/credit movement posted against one account.
// Exactly one of Debit/Credit is nonzero; the recorded value is always the magnitude
// of the movement, direction is carried by which side is set.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID), assigned at posting time
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"`
	AccountNumber int             `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Side reports which side of the entry this transaction was posted on.
func (t Transaction) Side() EntrySide {
	if !t.Debit.IsZero() {
		return Debit
	}
	return Credit
}

// Amount returns the magnitude of the movement regardless of side.
func (t Transaction) Amount() decimal.Decimal {
	if !t.Debit.IsZero() {
		return t.Debit
	}
	return t.Credit
}
