package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestedLine is one (contract, amount) pair of a payment request.
type RequestedLine struct {
	ContractID int64
	Amount     decimal.Decimal
}

// AllocationRequest is what the validator checks before anything is written.
// The single-contract path is the one-line case.
type AllocationRequest struct {
	CustomerID  int64
	TotalAmount decimal.Decimal
	Lines       []RequestedLine
}

// ValidatedAllocation is the outcome of a successful validation. Balances are the snapshots
// the decision was based on, keyed by contract.
type ValidatedAllocation struct {
	Request  AllocationRequest
	Balances map[int64]ContractBalance
}

// Ceilings returns each contract's total value, the bound the ledger re-checks under its
// serializable transaction.
func (v ValidatedAllocation) Ceilings() map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal, len(v.Balances))
	for id, b := range v.Balances {
		out[id] = b.TotalValue
	}
	return out
}

// DuplicateCandidate holds the fields the duplicate heuristic compares.
type DuplicateCandidate struct {
	ContractID    int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	Note          string
}
