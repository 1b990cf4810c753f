package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
)

type duplicateGuard struct {
	BaseService
	ledger portsrepo.PaymentReader
}

// NewDuplicateGuard creates a new DuplicateGuardSvc.
func NewDuplicateGuard(ledger portsrepo.PaymentReader) portssvc.DuplicateGuardSvc {
	return &duplicateGuard{ledger: ledger}
}

var _ portssvc.DuplicateGuardSvc = (*duplicateGuard)(nil)

// CheckDuplicate rejects a candidate that matches a live payment on contract, amount, UTC day,
// method and note. Any one differing field lets the candidate through.
func (g *duplicateGuard) CheckDuplicate(ctx context.Context, c domain.DuplicateCandidate) error {
	candidates, err := g.ledger.FindDuplicateCandidates(ctx, c.ContractID, c.Amount, c.PaymentDate, c.PaymentMethod)
	if err != nil {
		g.LogError(ctx, err, "Duplicate lookup failed", slog.Int64("contract_id", c.ContractID))
		return fmt.Errorf("failed to check for duplicate payments: %w", err)
	}

	for _, existing := range candidates {
		if existing.PaymentMethod != c.PaymentMethod ||
			!existing.AmountFor(c.ContractID).Equal(c.Amount) ||
			!domain.SameCalendarDay(existing.PaymentDate, c.PaymentDate) ||
			existing.Note != c.Note {
			continue
		}
		g.GetLogger(ctx).Warn("Duplicate payment submission rejected",
			slog.String("existing_payment_id", existing.PaymentID),
			slog.Int64("contract_id", c.ContractID))
		return fmt.Errorf("%w: payment %s already records %s against contract %d on %s",
			apperrors.ErrDuplicate, existing.PaymentID, c.Amount.StringFixed(2), c.ContractID, c.PaymentDate.UTC().Format("2006-01-02"))
	}
	return nil
}

func (g *duplicateGuard) CheckIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.Payment, error) {
	if idempotencyKey == "" {
		return nil, nil
	}
	existing, err := g.ledger.FindPaymentByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		g.LogError(ctx, err, "Idempotency key lookup failed")
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return existing, nil
}
