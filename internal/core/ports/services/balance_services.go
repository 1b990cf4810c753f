package services

import (
	"context"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResolverSvc answers how much of a contract is paid and how much is left.
type BalanceResolverSvc interface {
	// TotalPaid returns the ledger's paid total for the contract, zero when nothing is recorded.
	TotalPaid(ctx context.Context, contractID int64) (decimal.Decimal, error)

	// Remaining returns contract total value minus TotalPaid. Fails closed when the contract
	// service cannot be reached.
	Remaining(ctx context.Context, contractID int64) (decimal.Decimal, error)

	// Snapshot returns the remote contract joined with TotalPaid and Remaining.
	Snapshot(ctx context.Context, contractID int64) (*domain.ContractBalance, error)
}
