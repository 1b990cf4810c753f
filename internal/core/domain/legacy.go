package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyPayment is the superseded header shape: one contract and one amount stored directly on
// the payment row, with no allocation rows.
type LegacyPayment struct {
	PaymentID     string
	CustomerID    int64
	ContractID    int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	Note          string
	IsDeleted     bool
	AuditFields
}

// LegacyAllocationID derives a stable identifier for the implicit line of a legacy payment.
func LegacyAllocationID(paymentID string) string {
	return "legacy-" + paymentID
}

// ToPayment reads the legacy shape as a canonical payment with a single committed allocation.
func (l LegacyPayment) ToPayment() Payment {
	return Payment{
		PaymentID:     l.PaymentID,
		CustomerID:    l.CustomerID,
		PaymentDate:   l.PaymentDate,
		PaymentMethod: l.PaymentMethod,
		TotalAmount:   l.Amount,
		Note:          l.Note,
		IsDeleted:     l.IsDeleted,
		Allocations: []Allocation{{
			AllocationID: LegacyAllocationID(l.PaymentID),
			PaymentID:    l.PaymentID,
			ContractID:   l.ContractID,
			Amount:       l.Amount,
			State:        Committed,
			AuditFields:  l.AuditFields,
		}},
		AuditFields: l.AuditFields,
	}
}
