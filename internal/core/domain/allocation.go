package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationState tracks a line through reserve, then commit or release.
type AllocationState string

const (
	Reserved  AllocationState = "RESERVED"
	Committed AllocationState = "COMMITTED"
	Released  AllocationState = "RELEASED"
)

// CountsTowardBalance is true for states that consume the contract's remaining balance.
func (s AllocationState) CountsTowardBalance() bool {
	return s == Reserved || s == Committed
}

// CanTransitionTo allows only RESERVED -> COMMITTED and RESERVED -> RELEASED.
func (s AllocationState) CanTransitionTo(next AllocationState) bool {
	return s == Reserved && (next == Committed || next == Released)
}

// Allocation attributes part of a payment to one contract.
type Allocation struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	ContractID   int64           `json:"contractID"`
	Amount       decimal.Decimal `json:"amount"`
	State        AllocationState `json:"state"`
	AuditFields
}

// Transition moves the allocation to next or returns an error for an illegal move.
func (a *Allocation) Transition(next AllocationState) error {
	if !a.State.CanTransitionTo(next) {
		return fmt.Errorf("allocation %s cannot move from %s to %s", a.AllocationID, a.State, next)
	}
	a.State = next
	return nil
}
