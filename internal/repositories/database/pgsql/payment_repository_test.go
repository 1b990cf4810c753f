package pgsql

import (
	"context"
	"testing"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// The line/total check runs before any connection is taken, so a repository without a pool is enough.
func TestReservePayment_RejectsUnbalancedPayment(t *testing.T) {
	repo := &PgxPaymentRepository{}

	unbalanced := domain.Payment{
		PaymentID:   "p-1",
		TotalAmount: decimal.NewFromInt(1000),
		Allocations: []domain.Allocation{
			{AllocationID: "a-1", ContractID: 10, Amount: decimal.NewFromInt(600), State: domain.Reserved},
			{AllocationID: "a-2", ContractID: 11, Amount: decimal.NewFromInt(300), State: domain.Reserved},
		},
	}
	err := repo.ReservePayment(context.Background(), unbalanced, map[int64]decimal.Decimal{10: decimal.NewFromInt(1000), 11: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	empty := domain.Payment{PaymentID: "p-2", TotalAmount: decimal.NewFromInt(5)}
	assert.ErrorIs(t, repo.ReservePayment(context.Background(), empty, nil), apperrors.ErrInvalidAmount)
}
