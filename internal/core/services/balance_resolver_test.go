package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBalanceResolver_Remaining(t *testing.T) {
	ledger := new(MockPaymentRepository)
	contracts := new(MockContractDirectory)
	contracts.On("GetContract", mock.Anything, int64(10)).
		Return(&domain.Contract{ContractID: 10, TotalValue: dec("1000"), Status: domain.ContractActive}, nil).Once()
	ledger.On("TotalPaid", mock.Anything, int64(10)).Return(dec("650.50"), nil).Once()

	remaining, err := services.NewBalanceResolver(ledger, contracts).Remaining(context.Background(), 10)

	require.NoError(t, err)
	assert.True(t, dec("349.50").Equal(remaining), "got %s", remaining)
}

func TestBalanceResolver_TotalPaidZeroWhenNothingRecorded(t *testing.T) {
	ledger := new(MockPaymentRepository)
	ledger.On("TotalPaid", mock.Anything, int64(42)).Return(dec("0"), nil).Once()

	total, err := services.NewBalanceResolver(ledger, new(MockContractDirectory)).TotalPaid(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

// An unreachable contract service must never read as "nothing owed".
func TestBalanceResolver_RemainingFailsClosed(t *testing.T) {
	ledger := new(MockPaymentRepository)
	contracts := new(MockContractDirectory)
	contracts.On("GetContract", mock.Anything, int64(10)).
		Return(nil, fmt.Errorf("%w: contract-service returned 502", apperrors.ErrUnavailable)).Once()

	remaining, err := services.NewBalanceResolver(ledger, contracts).Remaining(context.Background(), 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.True(t, remaining.IsZero())
	ledger.AssertNotCalled(t, "TotalPaid", mock.Anything, mock.Anything)
}

func TestBalanceResolver_LedgerErrorPropagates(t *testing.T) {
	ledger := new(MockPaymentRepository)
	contracts := new(MockContractDirectory)
	contracts.On("GetContract", mock.Anything, int64(10)).
		Return(&domain.Contract{ContractID: 10, TotalValue: dec("1000")}, nil).Once()
	ledger.On("TotalPaid", mock.Anything, int64(10)).Return(dec("0"), assert.AnError).Once()

	_, err := services.NewBalanceResolver(ledger, contracts).Snapshot(context.Background(), 10)

	assert.ErrorIs(t, err, assert.AnError)
}
