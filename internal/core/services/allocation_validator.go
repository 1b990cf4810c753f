package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type allocationValidator struct {
	BaseService
	customers clients.CustomerDirectory
	balances  portssvc.BalanceResolverSvc
}

// NewAllocationValidator creates a new AllocationValidatorSvc.
func NewAllocationValidator(customers clients.CustomerDirectory, balances portssvc.BalanceResolverSvc) portssvc.AllocationValidatorSvc {
	return &allocationValidator{
		customers: customers,
		balances:  balances,
	}
}

var _ portssvc.AllocationValidatorSvc = (*allocationValidator)(nil)

func (v *allocationValidator) ValidateSingle(ctx context.Context, req domain.AllocationRequest) (*domain.ValidatedAllocation, error) {
	if len(req.Lines) != 1 {
		return nil, fmt.Errorf("%w: single-contract payment must have exactly one line, got %d", apperrors.ErrValidation, len(req.Lines))
	}
	return v.ValidateMulti(ctx, req)
}

// ValidateMulti runs the amount checks first, then the remote customer and per-contract checks.
// Nothing is written here, so a failing line leaves no trace of the request.
func (v *allocationValidator) ValidateMulti(ctx context.Context, req domain.AllocationRequest) (*domain.ValidatedAllocation, error) {
	logger := v.GetLogger(ctx)

	if err := checkAmounts(req); err != nil {
		return nil, err
	}

	exists, err := v.customers.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		logger.Error("Customer existence check failed", slog.Int64("customer_id", req.CustomerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to verify customer %d: %w", req.CustomerID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrCustomerNotFound, req.CustomerID)
	}

	// Several lines may name the same contract; the remaining check applies to their sum.
	lines := make([]domain.Allocation, len(req.Lines))
	order := make([]int64, 0, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.Allocation{ContractID: l.ContractID, Amount: l.Amount}
	}
	requested := accounting.SumByContract(lines)
	seen := make(map[int64]bool, len(requested))
	for _, l := range req.Lines {
		if !seen[l.ContractID] {
			seen[l.ContractID] = true
			order = append(order, l.ContractID)
		}
	}

	balances := make(map[int64]domain.ContractBalance, len(order))
	for _, contractID := range order {
		snapshot, err := v.balances.Snapshot(ctx, contractID)
		if err != nil {
			return nil, err
		}
		if !snapshot.Status.AcceptsPayments() {
			return nil, fmt.Errorf("%w: contract %d is %s", apperrors.ErrContractNotActive, contractID, snapshot.Status)
		}
		if accounting.ExceedsRemaining(requested[contractID], snapshot.Remaining) {
			return nil, fmt.Errorf("%w: contract %d has %s remaining, %s requested",
				apperrors.ErrInvalidAmount, contractID, snapshot.Remaining.StringFixed(2), requested[contractID].StringFixed(2))
		}
		balances[contractID] = *snapshot
	}

	logger.Debug("Allocation validated", slog.Int64("customer_id", req.CustomerID), slog.Int("contracts", len(balances)))
	return &domain.ValidatedAllocation{Request: req, Balances: balances}, nil
}

func checkAmounts(req domain.AllocationRequest) error {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: total amount must be positive", apperrors.ErrInvalidAmount)
	}
	if !accounting.FitsScale(req.TotalAmount) {
		return fmt.Errorf("%w: total amount supports at most %d decimal places", apperrors.ErrInvalidAmount, domain.AmountScale)
	}
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: at least one contract allocation is required", apperrors.ErrInvalidAmount)
	}
	sum := decimal.Zero
	for _, l := range req.Lines {
		if l.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: allocation for contract %d must be positive", apperrors.ErrInvalidAmount, l.ContractID)
		}
		if !accounting.FitsScale(l.Amount) {
			return fmt.Errorf("%w: allocation for contract %d supports at most %d decimal places", apperrors.ErrInvalidAmount, l.ContractID, domain.AmountScale)
		}
		sum = sum.Add(l.Amount)
	}
	if !accounting.WithinTolerance(sum, req.TotalAmount) {
		return fmt.Errorf("%w: allocations sum to %s but total is %s", apperrors.ErrInvalidAmount, sum.StringFixed(2), req.TotalAmount.StringFixed(2))
	}
	return nil
}
