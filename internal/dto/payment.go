package dto

import (
	"time"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the single-contract submission body.
type CreatePaymentRequest struct {
	CustomerID    int64                `json:"customerId" binding:"required,gt=0"`
	ContractID    int64                `json:"customerContractId" binding:"required,gt=0"`
	PaymentAmount decimal.Decimal      `json:"paymentAmount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"paymentmethod"`
	PaymentDate   *time.Time           `json:"paymentDate"`
	Note          string               `json:"note" binding:"max=500"`
}

// ContractAllocationRequest is one line of a multi-contract submission.
type ContractAllocationRequest struct {
	ContractID      int64           `json:"contractId" binding:"required,gt=0"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
}

// CreateMultiContractPaymentRequest is the multi-contract submission body.
// Amount rules are enforced by the allocation validator so that they map to InvalidAmount.
type CreateMultiContractPaymentRequest struct {
	CustomerID       int64                       `json:"customerId" binding:"required,gt=0"`
	TotalAmount      decimal.Decimal             `json:"totalAmount"`
	PaymentMethod    domain.PaymentMethod        `json:"paymentMethod" binding:"paymentmethod"`
	PaymentDate      *time.Time                  `json:"paymentDate"`
	Note             string                      `json:"note" binding:"max=500"`
	ContractPayments []ContractAllocationRequest `json:"contractPayments" binding:"dive"`
}

// IdempotencyHeader binds the optional client token.
type IdempotencyHeader struct {
	Key string `header:"Idempotency-Key" binding:"omitempty,max=128,printascii"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// AllocationResponse is one payment-to-contract line.
type AllocationResponse struct {
	AllocationID    string                 `json:"id"`
	PaymentID       string                 `json:"paymentId"`
	ContractID      int64                  `json:"contractId"`
	AllocatedAmount decimal.Decimal        `json:"allocatedAmount"`
	State           domain.AllocationState `json:"state"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// PaymentResponse is a payment header with its lines.
type PaymentResponse struct {
	PaymentID        string               `json:"id"`
	CustomerID       int64                `json:"customerId"`
	PaymentDate      time.Time            `json:"paymentDate"`
	PaymentMethod    domain.PaymentMethod `json:"paymentMethod"`
	TotalAmount      decimal.Decimal      `json:"totalAmount"`
	Note             string               `json:"note"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
	ContractPayments []AllocationResponse `json:"contractPayments"`
}

// ListPaymentsResponse is a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ContractBalanceResponse is a contract with what has been paid against it.
type ContractBalanceResponse struct {
	ContractID   int64           `json:"contractId"`
	ContractCode string          `json:"contractCode"`
	CustomerID   int64           `json:"customerId"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	Status       int             `json:"status"`
}

// ContractPaymentInfoResponse adds the customer's display name.
type ContractPaymentInfoResponse struct {
	ContractBalanceResponse
	CustomerName string `json:"customerName"`
}

// AmountResponse wraps a single aggregate figure.
type AmountResponse struct {
	ContractID int64           `json:"contractId"`
	Amount     decimal.Decimal `json:"amount"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToAllocationResponse converts a domain.Allocation to its DTO.
func ToAllocationResponse(a domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:    a.AllocationID,
		PaymentID:       a.PaymentID,
		ContractID:      a.ContractID,
		AllocatedAmount: a.Amount,
		State:           a.State,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAllocationResponses converts a slice of domain.Allocation.
func ToAllocationResponses(lines []domain.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, len(lines))
	for i, l := range lines {
		out[i] = ToAllocationResponse(l)
	}
	return out
}

// ToPaymentResponse converts a domain.Payment to its DTO.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		CustomerID:       p.CustomerID,
		PaymentDate:      p.PaymentDate,
		PaymentMethod:    p.PaymentMethod,
		TotalAmount:      p.TotalAmount,
		Note:             p.Note,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
		ContractPayments: ToAllocationResponses(p.Allocations),
	}
}

// ToPaymentResponses converts a slice of domain.Payment.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return out
}

// ToContractBalanceResponse converts a domain.ContractBalance.
func ToContractBalanceResponse(b domain.ContractBalance) ContractBalanceResponse {
	return ContractBalanceResponse{
		ContractID:   b.ContractID,
		ContractCode: b.ContractCode,
		CustomerID:   b.CustomerID,
		TotalAmount:  b.TotalValue,
		TotalPaid:    b.TotalPaid,
		TotalDue:     b.Remaining,
		Status:       int(b.Status),
	}
}

// ToContractBalanceResponses converts a slice of domain.ContractBalance.
func ToContractBalanceResponses(balances []domain.ContractBalance) []ContractBalanceResponse {
	out := make([]ContractBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = ToContractBalanceResponse(b)
	}
	return out
}

// ToContractPaymentInfoResponse converts a domain.ContractPaymentInfo.
func ToContractPaymentInfoResponse(info domain.ContractPaymentInfo) ContractPaymentInfoResponse {
	return ContractPaymentInfoResponse{
		ContractBalanceResponse: ToContractBalanceResponse(info.ContractBalance),
		CustomerName:            info.CustomerName,
	}
}
