package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainPayment_LegacyRowBecomesSingleLine(t *testing.T) {
	contractID := int64(10)
	row := models.CustomerPayment{
		PaymentID:        "p-legacy",
		CustomerID:       3,
		PaymentDate:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		PaymentMethod:    1,
		TotalAmount:      decimal.NewFromInt(500),
		Note:             "rent",
		LegacyContractID: &contractID,
		LegacyAmount:     decimal.NewNullDecimal(decimal.NewFromInt(500)),
	}

	p := ToDomainPayment(row, nil)

	require.Len(t, p.Allocations, 1)
	assert.Equal(t, int64(10), p.Allocations[0].ContractID)
	assert.Equal(t, domain.Committed, p.Allocations[0].State)
	assert.Equal(t, domain.BankTransfer, p.PaymentMethod)
}

func TestToDomainPayment_RowsWinOverLegacyColumns(t *testing.T) {
	contractID := int64(10)
	row := models.CustomerPayment{
		PaymentID:        "p-1",
		TotalAmount:      decimal.NewFromInt(500),
		LegacyContractID: &contractID,
		LegacyAmount:     decimal.NewNullDecimal(decimal.NewFromInt(500)),
	}
	lines := []models.ContractPayment{
		{AllocationID: "a-1", PaymentID: "p-1", LineNo: 1, ContractID: 10, AllocatedAmount: decimal.NewFromInt(300), State: "COMMITTED"},
		{AllocationID: "a-2", PaymentID: "p-1", LineNo: 2, ContractID: 11, AllocatedAmount: decimal.NewFromInt(200), State: "RESERVED"},
	}

	p := ToDomainPayment(row, lines)

	require.Len(t, p.Allocations, 2)
	assert.Equal(t, "a-1", p.Allocations[0].AllocationID)
	assert.Equal(t, domain.Reserved, p.Allocations[1].State)
}

func TestToModelContractPayments_NumbersLines(t *testing.T) {
	rows := ToModelContractPayments([]domain.Allocation{
		{AllocationID: "a", ContractID: 1, Amount: decimal.NewFromInt(1), State: domain.Reserved},
		{AllocationID: "b", ContractID: 2, Amount: decimal.NewFromInt(2), State: domain.Reserved},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].LineNo)
	assert.Equal(t, 2, rows[1].LineNo)
	assert.Equal(t, "RESERVED", rows[1].State)
}
