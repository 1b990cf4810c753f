package clients

import (
	"context"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
)

// CustomerDirectory is the customer service as seen by this ledger.
type CustomerDirectory interface {
	// CustomerExists reports whether the customer is known. Transport failures are errors,
	// never false.
	CustomerExists(ctx context.Context, customerID int64) (bool, error)

	// GetCustomer fetches display data for a customer.
	GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error)
}

// ContractDirectory is the contract service as seen by this ledger.
type ContractDirectory interface {
	// GetContract fetches total value and status. Unknown contracts yield apperrors.ErrContractNotFound.
	GetContract(ctx context.Context, contractID int64) (*domain.Contract, error)

	// ContractExists reports whether the contract is known. Transport failures are errors.
	ContractExists(ctx context.Context, contractID int64) (bool, error)

	// ListContractsByCustomer fetches every contract of a customer.
	ListContractsByCustomer(ctx context.Context, customerID int64) ([]domain.Contract, error)
}

// PaymentEventSink receives best-effort notifications after a payment is persisted.
// Implementations must not block and must swallow their own failures.
type PaymentEventSink interface {
	PaymentRecorded(ctx context.Context, userID string, p domain.Payment)
}
