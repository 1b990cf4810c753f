package accounting

import (
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumAllocations adds up the amounts of all given lines regardless of state.
func SumAllocations(lines []domain.Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// SumByContract groups line amounts per contract. Several lines may target the same contract.
func SumByContract(lines []domain.Allocation) map[int64]decimal.Decimal {
	sums := make(map[int64]decimal.Decimal, len(lines))
	for _, l := range lines {
		sums[l.ContractID] = sums[l.ContractID].Add(l.Amount)
	}
	return sums
}

// WithinTolerance reports whether |a - b| <= domain.AllocationTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(domain.AllocationTolerance)
}

// ExceedsRemaining is true when amount is strictly larger than remaining.
// A negative remaining (already overpaid) rejects every positive amount.
func ExceedsRemaining(amount, remaining decimal.Decimal) bool {
	return amount.GreaterThan(remaining)
}

// FitsScale reports whether amount can be stored without rounding. Trailing zeros are fine.
func FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(domain.AmountScale))
}
