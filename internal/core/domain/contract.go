package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContractStatus mirrors the contract service's integer status codes.
type ContractStatus int

const (
	ContractPending   ContractStatus = 0
	ContractActive    ContractStatus = 1
	ContractCompleted ContractStatus = 2
	ContractCancelled ContractStatus = 3
)

// AcceptsPayments is true only for PENDING and ACTIVE contracts.
func (s ContractStatus) AcceptsPayments() bool {
	return s == ContractPending || s == ContractActive
}

func (s ContractStatus) String() string {
	switch s {
	case ContractPending:
		return "PENDING"
	case ContractActive:
		return "ACTIVE"
	case ContractCompleted:
		return "COMPLETED"
	case ContractCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// Contract is the slice of the remote contract this ledger relies on.
// The contract service owns TotalValue and Status; this ledger owns the amount paid.
type Contract struct {
	ContractID   int64           `json:"contractID"`
	ContractCode string          `json:"contractCode"`
	CustomerID   int64           `json:"customerID"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	Status       ContractStatus  `json:"status"`
}

// ContractBalance is a contract joined with what this ledger has recorded against it.
type ContractBalance struct {
	Contract
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// NewContractBalance computes Remaining as TotalValue minus TotalPaid.
func NewContractBalance(c Contract, totalPaid decimal.Decimal) ContractBalance {
	return ContractBalance{
		Contract:  c,
		TotalPaid: totalPaid,
		Remaining: c.TotalValue.Sub(totalPaid),
	}
}

// ContractPaymentInfo is the read model behind the payment-info endpoint.
type ContractPaymentInfo struct {
	ContractBalance
	CustomerName string `json:"customerName"`
}
