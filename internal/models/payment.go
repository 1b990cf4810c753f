package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerPayment is a row of customer_payments.
type CustomerPayment struct {
	PaymentID      string
	CustomerID     int64
	PaymentDate    time.Time
	PaymentMethod  int
	TotalAmount    decimal.Decimal
	Note           string
	IdempotencyKey *string
	// Set only on rows of the superseded single-contract shape.
	LegacyContractID *int64
	LegacyAmount     decimal.NullDecimal
	IsDeleted        bool
	AuditFields
}

// IsLegacy reports whether the row carries the single-contract columns.
func (p CustomerPayment) IsLegacy() bool {
	return p.LegacyContractID != nil && p.LegacyAmount.Valid
}

// ContractPayment is a row of contract_payments (or the contract_payment_lines view).
type ContractPayment struct {
	AllocationID    string
	PaymentID       string
	LineNo          int
	ContractID      int64
	AllocatedAmount decimal.Decimal
	State           string
	AuditFields
}
