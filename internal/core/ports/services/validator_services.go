package services

import (
	"context"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
)

// AllocationValidatorSvc checks a payment request against amount, customer, status and
// balance rules before anything is persisted.
type AllocationValidatorSvc interface {
	// ValidateMulti evaluates every line and returns the balances it relied on.
	ValidateMulti(ctx context.Context, req domain.AllocationRequest) (*domain.ValidatedAllocation, error)

	// ValidateSingle is ValidateMulti for a request of exactly one line.
	ValidateSingle(ctx context.Context, req domain.AllocationRequest) (*domain.ValidatedAllocation, error)
}
