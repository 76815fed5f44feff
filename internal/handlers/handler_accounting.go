package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/awbsmith/bookkeeper/internal/apperrors"
	portssvc "github.com/awbsmith/bookkeeper/internal/core/ports/services"
	"github.com/awbsmith/bookkeeper/internal/dto"
)

// AccountingHandler exposes the accounting engine over HTTP.
type AccountingHandler struct {
	accountingSvc portssvc.AccountingSvc
}

// NewAccountingHandler creates a new AccountingHandler.
func NewAccountingHandler(accountingSvc portssvc.AccountingSvc) *AccountingHandler {
	return &AccountingHandler{accountingSvc: accountingSvc}
}

// respondError maps engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownAccount), errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrZeroAmount),
		errors.Is(err, apperrors.ErrUnsupportedAccountType),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// accountNumberParam parses the :accountNumber path parameter.
func accountNumberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("accountNumber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account number"})
		return 0, false
	}
	return number, true
}

// CreateAccount handles POST /accounts.
func (h *AccountingHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountingSvc.CreateNewAccount(c.Request.Context(), req.AccountNumber, req.Name, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := account.Balance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account, balance))
}

// GetAccount handles GET /accounts/:accountNumber.
func (h *AccountingHandler) GetAccount(c *gin.Context) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	account, err := h.accountingSvc.GetAccount(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := account.Balance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account, balance))
}

// GetStatement handles GET /accounts/:accountNumber/statement.
func (h *AccountingHandler) GetStatement(c *gin.Context) {
	number, ok := accountNumberParam(c)
	if !ok {
		return
	}

	account, err := h.accountingSvc.GetStatementFor(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := account.Balance()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatementResponse{
		AccountResponse: dto.ToAccountResponse(account, balance),
		Transactions:    account.Transactions(),
	})
}

// GetChartOfAccounts handles GET /accounts.
func (h *AccountingHandler) GetChartOfAccounts(c *gin.Context) {
	accounts, err := h.accountingSvc.GetChartOfAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		balance, err := account.Balance()
		if err != nil {
			respondError(c, err)
			return
		}
		responses = append(responses, dto.ToAccountResponse(account, balance))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": responses})
}

// GetTrialBalance handles GET /reports/trial-balance.
func (h *AccountingHandler) GetTrialBalance(c *gin.Context) {
	trialBalance, err := h.accountingSvc.GetTrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trialBalance)
}

// GetJournal handles GET /journal.
func (h *AccountingHandler) GetJournal(c *gin.Context) {
	entries, err := h.accountingSvc.GetJournal(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// RecordSale handles POST /postings/sales. A nonzero salesTaxAmount records a
// taxable sale, otherwise a tax free sale.
func (h *AccountingHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.SalesTaxAmount.IsZero() {
		err = h.accountingSvc.RecordTaxFreeSale(c.Request.Context(), req.CustomerAccountNo, req.Amount, req.Date, req.Reference)
	} else {
		err = h.accountingSvc.RecordTaxableSale(c.Request.Context(), req.CustomerAccountNo, req.Amount, req.SalesTaxAmount, req.Date, req.Reference)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}

// RecordPurchase handles POST /postings/purchases.
func (h *AccountingHandler) RecordPurchase(c *gin.Context) {
	var req dto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountingSvc.RecordPurchaseFrom(c.Request.Context(), req.SupplierAccountNo, req.AssetAccountNo, req.NetAmount, req.SalesTaxAmount, req.Date, req.Reference); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}

// RecordPayment handles POST /postings/payments.
func (h *AccountingHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountingSvc.RecordPaymentTo(c.Request.Context(), req.RecipientAccountNo, req.Amount, req.Date, req.Reference); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}

// RecordInvestment handles POST /postings/investments.
func (h *AccountingHandler) RecordInvestment(c *gin.Context) {
	var req dto.RecordInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountingSvc.RecordCashInvestmentBy(c.Request.Context(), req.AccountNo, req.Amount, req.Date, req.Reference); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}

// RecordOwnerInjection handles POST /postings/owner-injections.
func (h *AccountingHandler) RecordOwnerInjection(c *gin.Context) {
	var req dto.RecordOwnerInjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountingSvc.RecordCashInjectionByOwner(c.Request.Context(), req.Amount, req.Date, req.Reference); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}
