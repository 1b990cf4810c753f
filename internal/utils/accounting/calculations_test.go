package accounting

import (
	"testing"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSumAllocations(t *testing.T) {
	lines := []domain.Allocation{
		{ContractID: 1, Amount: dec("600")},
		{ContractID: 2, Amount: dec("399.995")},
	}
	assert.True(t, dec("999.995").Equal(SumAllocations(lines)))
	assert.True(t, decimal.Zero.Equal(SumAllocations(nil)))
}

func TestSumByContract(t *testing.T) {
	lines := []domain.Allocation{
		{ContractID: 1, Amount: dec("100")},
		{ContractID: 2, Amount: dec("50")},
		{ContractID: 1, Amount: dec("25.5")},
	}
	sums := SumByContract(lines)
	assert.Len(t, sums, 2)
	assert.True(t, dec("125.5").Equal(sums[1]))
	assert.True(t, dec("50").Equal(sums[2]))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(dec("1000"), dec("1000")))
	assert.True(t, WithinTolerance(dec("1000"), dec("999.99")))
	assert.True(t, WithinTolerance(dec("999.99"), dec("1000")))
	assert.False(t, WithinTolerance(dec("1000"), dec("999.98")))
	assert.False(t, WithinTolerance(dec("1000"), dec("1000.02")))
}

func TestExceedsRemaining(t *testing.T) {
	assert.False(t, ExceedsRemaining(dec("300"), dec("300")))
	assert.True(t, ExceedsRemaining(dec("300.01"), dec("300")))
	assert.True(t, ExceedsRemaining(dec("1"), dec("0")))
	assert.True(t, ExceedsRemaining(dec("1"), dec("-5")))
}

func TestFitsScale(t *testing.T) {
	assert.True(t, FitsScale(dec("100")))
	assert.True(t, FitsScale(dec("399.995")))
	assert.True(t, FitsScale(dec("0.0001")))
	assert.True(t, FitsScale(dec("1.000000")))
	assert.False(t, FitsScale(dec("0.00001")))
	assert.False(t, FitsScale(dec("100.00005")))
}
