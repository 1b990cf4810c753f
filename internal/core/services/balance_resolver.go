package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceResolver joins the contract service's total value with the ledger's paid total.
type balanceResolver struct {
	BaseService
	ledger    portsrepo.AllocationReader
	contracts clients.ContractDirectory
}

// NewBalanceResolver creates a new BalanceResolverSvc.
func NewBalanceResolver(ledger portsrepo.AllocationReader, contracts clients.ContractDirectory) portssvc.BalanceResolverSvc {
	return &balanceResolver{
		ledger:    ledger,
		contracts: contracts,
	}
}

var _ portssvc.BalanceResolverSvc = (*balanceResolver)(nil)

func (s *balanceResolver) TotalPaid(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	total, err := s.ledger.TotalPaid(ctx, contractID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute total paid", slog.Int64("contract_id", contractID))
		return decimal.Zero, fmt.Errorf("failed to compute total paid for contract %d: %w", contractID, err)
	}
	return total, nil
}

// Remaining fails closed: without the contract's total value there is no remaining figure.
func (s *balanceResolver) Remaining(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	snapshot, err := s.Snapshot(ctx, contractID)
	if err != nil {
		return decimal.Zero, err
	}
	return snapshot.Remaining, nil
}

func (s *balanceResolver) Snapshot(ctx context.Context, contractID int64) (*domain.ContractBalance, error) {
	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		s.GetLogger(ctx).Warn("Contract lookup failed", slog.Int64("contract_id", contractID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch contract %d: %w", contractID, err)
	}

	paid, err := s.TotalPaid(ctx, contractID)
	if err != nil {
		return nil, err
	}

	balance := domain.NewContractBalance(*contract, paid)
	s.LogDebug(ctx, "Contract balance resolved",
		slog.Int64("contract_id", contractID),
		slog.String("total_value", balance.TotalValue.String()),
		slog.String("total_paid", balance.TotalPaid.String()),
		slog.String("remaining", balance.Remaining.String()))
	return &balance, nil
}
