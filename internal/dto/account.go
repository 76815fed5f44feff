package dto

import (
	"github.com/shopspring/decimal"

	"github.com/awbsmith/bookkeeper/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a new ledger account.
type CreateAccountRequest struct {
	AccountNumber int                `json:"accountNumber" binding:"required,gt=0"`
	Name          string             `json:"name" binding:"required"`
	Type          domain.AccountType `json:"type" binding:"required,accounttype"`
}

// AccountResponse describes one account without its transaction history.
type AccountResponse struct {
	AccountNumber int                `json:"accountNumber"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
}

// StatementResponse is a statement of account: the account header, its full
// posting history and the derived balance.
type StatementResponse struct {
	AccountResponse
	Transactions []domain.Transaction `json:"transactions"`
}

// ToAccountResponse maps a domain account to its response form.
// The balance fold is assumed to have been validated by the caller.
func ToAccountResponse(account *domain.Account, balance decimal.Decimal) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Type:          account.Type,
		Balance:       balance,
	}
}
