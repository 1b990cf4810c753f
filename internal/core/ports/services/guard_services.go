package services

import (
	"context"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
)

// DuplicateGuardSvc detects repeated submissions.
type DuplicateGuardSvc interface {
	// CheckDuplicate returns apperrors.ErrDuplicate when a live payment matches the candidate's
	// contract, amount, calendar day, method and note.
	CheckDuplicate(ctx context.Context, candidate domain.DuplicateCandidate) error

	// CheckIdempotencyKey returns the payment already recorded under idempotencyKey, or nil when
	// the key is unused or empty.
	CheckIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.Payment, error)
}
