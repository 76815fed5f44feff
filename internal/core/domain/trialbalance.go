package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceLineItem is one row of a trial balance: the unsigned debit and
// credit totals actually posted to an account, not its type-adjusted balance.
type TrialBalanceLineItem struct {
	AccountNumber int             `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance is a point-in-time aggregation over every account in a ledger.
// It is computed on demand and never persisted; later postings do not affect a
// previously generated instance.
type TrialBalance struct {
	LineItems         []TrialBalanceLineItem `json:"lineItems"`
	TotalDebitAmount  decimal.Decimal        `json:"totalDebitAmount"`
	TotalCreditAmount decimal.Decimal        `json:"totalCreditAmount"`
	IsBalanced        bool                   `json:"isBalanced"`
	GeneratedAt       time.Time              `json:"generatedAt"`
}

// GenerateTrialBalance builds a trial balance snapshot from the given chart of
// accounts. Line items are ordered by account number so repeated reads over an
// unchanged ledger yield identical reports. For any ledger mutated exclusively
// through paired business postings, total debits equal total credits.
func GenerateTrialBalance(accounts []*Account) TrialBalance {
	lineItems := make([]TrialBalanceLineItem, 0, len(accounts))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero

	for _, account := range accounts {
		debits, credits := account.DebitCreditTotals()
		lineItems = append(lineItems, TrialBalanceLineItem{
			AccountNumber: account.AccountNumber,
			AccountName:   account.Name,
			AccountType:   account.Type,
			Debit:         debits,
			Credit:        credits,
		})
		totalDebit = totalDebit.Add(debits)
		totalCredit = totalCredit.Add(credits)
	}

	sort.Slice(lineItems, func(i, j int) bool {
		return lineItems[i].AccountNumber < lineItems[j].AccountNumber
	})

	return TrialBalance{
		LineItems:         lineItems,
		TotalDebitAmount:  totalDebit,
		TotalCreditAmount: totalCredit,
		IsBalanced:        totalDebit.Equal(totalCredit),
		GeneratedAt:       time.Now().UTC(),
	}
}
