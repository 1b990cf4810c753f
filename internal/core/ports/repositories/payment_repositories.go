package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment headers.
// Every read skips soft-deleted payments and returns legacy rows in canonical form.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its allocations.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentByIdempotencyKey retrieves the payment recorded under a client key.
	FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)

	// ListPayments retrieves payments newest first using token-based pagination.
	ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// ListPaymentsByCustomer is ListPayments restricted to one customer.
	ListPaymentsByCustomer(ctx context.Context, customerID int64, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// ListPaymentsByContract retrieves every payment with a line against the contract.
	ListPaymentsByContract(ctx context.Context, contractID int64) ([]domain.Payment, error)

	// FindDuplicateCandidates retrieves payments against the contract with the same amount,
	// calendar day and method. Note comparison is left to the caller.
	FindDuplicateCandidates(ctx context.Context, contractID int64, amount decimal.Decimal, day time.Time, method domain.PaymentMethod) ([]domain.Payment, error)
}

// AllocationReader defines read operations for allocation lines and balances.
type AllocationReader interface {
	// ListAllocationsByPayment retrieves the lines of one payment.
	ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.Allocation, error)

	// ListAllocationsByContract retrieves every live line against a contract.
	ListAllocationsByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error)

	// TotalPaid sums reserved and committed lines plus legacy amounts for a contract. Never nil.
	TotalPaid(ctx context.Context, contractID int64) (decimal.Decimal, error)
}

// PaymentWriter defines write operations. Amounts are never updated after insert.
type PaymentWriter interface {
	// ReservePayment inserts the header and its lines as RESERVED inside one serializable
	// transaction, after re-checking that no contract's paid total would pass its ceiling.
	ReservePayment(ctx context.Context, payment domain.Payment, ceilings map[int64]decimal.Decimal) error

	// CommitAllocations moves the payment's RESERVED lines to COMMITTED.
	CommitAllocations(ctx context.Context, paymentID string, userID string, at time.Time) error

	// ReleaseStaleReservations moves RESERVED lines created before olderThan to RELEASED and
	// soft-deletes their payments. Returns the number of payments released.
	ReleaseStaleReservations(ctx context.Context, olderThan time.Time, userID string) (int, error)

	// SoftDeletePayment flags the payment deleted and releases any line still RESERVED.
	SoftDeletePayment(ctx context.Context, paymentID string, userID string, at time.Time) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	AllocationReader
	PaymentWriter
}
