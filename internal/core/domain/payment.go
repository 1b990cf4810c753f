package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the enumerated code of how the customer paid.
type PaymentMethod int

const (
	Cash         PaymentMethod = 0
	BankTransfer PaymentMethod = 1
	Card         PaymentMethod = 2
	OtherMethod  PaymentMethod = 3
)

// IsValid reports whether m is one of the known method codes.
func (m PaymentMethod) IsValid() bool {
	return m >= Cash && m <= OtherMethod
}

func (m PaymentMethod) String() string {
	switch m {
	case Cash:
		return "CASH"
	case BankTransfer:
		return "BANK_TRANSFER"
	case Card:
		return "CARD"
	case OtherMethod:
		return "OTHER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(m))
	}
}

// AllocationTolerance is the largest accepted gap between a payment total and the sum of its lines.
var AllocationTolerance = decimal.NewFromFloat(0.01)

// AmountScale is the number of decimal places the ledger stores.
const AmountScale int32 = 4

// Payment is the header of a customer payment. Allocations is never empty for a recorded payment.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	CustomerID     int64           `json:"customerID"`
	PaymentDate    time.Time       `json:"paymentDate"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Note           string          `json:"note"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	IsDeleted      bool            `json:"isDeleted"`
	Allocations    []Allocation    `json:"allocations"`
	AuditFields
}

// ContractIDs returns the distinct contracts the payment touches, in allocation order.
func (p Payment) ContractIDs() []int64 {
	seen := make(map[int64]bool, len(p.Allocations))
	ids := make([]int64, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		if !seen[a.ContractID] {
			seen[a.ContractID] = true
			ids = append(ids, a.ContractID)
		}
	}
	return ids
}

// AmountFor sums the payment's live allocations against one contract.
func (p Payment) AmountFor(contractID int64) decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		if a.ContractID == contractID && a.State.CountsTowardBalance() {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// IsPending is true while any allocation is still only reserved.
func (p Payment) IsPending() bool {
	for _, a := range p.Allocations {
		if a.State == Reserved {
			return true
		}
	}
	return false
}

// SameCalendarDay compares the UTC date part of two timestamps.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
