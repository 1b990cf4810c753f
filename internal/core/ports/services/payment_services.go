package services

import (
	"context"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/dto"
)

// PaymentReaderSvc defines read operations for payments and their lines.
type PaymentReaderSvc interface {
	// GetPayment retrieves a live payment with its allocations.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a page of payments, newest first.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// ListPaymentsByCustomer retrieves a page of one customer's payments.
	ListPaymentsByCustomer(ctx context.Context, customerID int64, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// ListPaymentsByContract retrieves every payment with a line against the contract.
	ListPaymentsByContract(ctx context.Context, contractID int64) ([]domain.Payment, error)

	// ListAllocationsByPayment retrieves the lines of one payment.
	ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.Allocation, error)

	// ListAllocationsByContract retrieves every live line against a contract.
	ListAllocationsByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error)
}

// PaymentWriterSvc defines the submission paths. Both run guard, validate, persist.
type PaymentWriterSvc interface {
	// CreatePayment records a single-contract payment.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, idempotencyKey string, userID string) (*domain.Payment, error)

	// CreateMultiContractPayment records a payment split across contracts, all or nothing.
	CreateMultiContractPayment(ctx context.Context, req dto.CreateMultiContractPaymentRequest, idempotencyKey string, userID string) (*domain.Payment, error)

	// ReleaseStaleReservations releases reservations older than maxAge that never committed.
	ReleaseStaleReservations(ctx context.Context, maxAge time.Duration, userID string) (int, error)

	// VoidPayment soft-deletes a payment and its lines. Operator use only.
	VoidPayment(ctx context.Context, paymentID string, userID string) error
}

// ContractLedgerSvc defines contract-centric read models.
type ContractLedgerSvc interface {
	// GetContractPaymentInfo returns the contract balance with the customer's display name.
	GetContractPaymentInfo(ctx context.Context, contractID int64) (*domain.ContractPaymentInfo, error)

	// ListActiveContractsByCustomer returns the customer's PENDING and ACTIVE contracts with balances.
	ListActiveContractsByCustomer(ctx context.Context, customerID int64) ([]domain.ContractBalance, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	ContractLedgerSvc
}
