package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest records a sale. A nonzero salesTaxAmount makes the sale
// taxable and adds the Sales Tax Owing posting.
type RecordSaleRequest struct {
	CustomerAccountNo int             `json:"customerAccountNo" binding:"required,gt=0"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	SalesTaxAmount    decimal.Decimal `json:"salesTaxAmount"`
	Date              time.Time       `json:"date" binding:"required"`
	Reference         string          `json:"reference" binding:"required"`
}

// RecordPurchaseRequest records a purchase from a supplier.
type RecordPurchaseRequest struct {
	SupplierAccountNo int             `json:"supplierAccountNo" binding:"required,gt=0"`
	AssetAccountNo    int             `json:"assetAccountNo" binding:"required,gt=0"`
	NetAmount         decimal.Decimal `json:"netAmount" binding:"required"`
	SalesTaxAmount    decimal.Decimal `json:"salesTaxAmount"`
	Date              time.Time       `json:"date" binding:"required"`
	Reference         string          `json:"reference" binding:"required"`
}

// RecordPaymentRequest records a payment to a recipient account.
type RecordPaymentRequest struct {
	RecipientAccountNo int             `json:"recipientAccountNo" binding:"required,gt=0"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Date               time.Time       `json:"date" binding:"required"`
	Reference          string          `json:"reference" binding:"required"`
}

// RecordInvestmentRequest records a cash investment by the named account.
type RecordInvestmentRequest struct {
	AccountNo int             `json:"accountNo" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Reference string          `json:"reference" binding:"required"`
}

// RecordOwnerInjectionRequest records a cash injection by the owner.
type RecordOwnerInjectionRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Reference string          `json:"reference" binding:"required"`
}
