package mapping

import (
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelPayment converts the header of a domain payment. Lines are mapped separately.
func ToModelPayment(p domain.Payment) models.CustomerPayment {
	return models.CustomerPayment{
		PaymentID:      p.PaymentID,
		CustomerID:     p.CustomerID,
		PaymentDate:    p.PaymentDate,
		PaymentMethod:  int(p.PaymentMethod),
		TotalAmount:    p.TotalAmount,
		Note:           p.Note,
		IdempotencyKey: p.IdempotencyKey,
		IsDeleted:      p.IsDeleted,
		AuditFields:    ToModelAuditFields(p.AuditFields),
	}
}

// ToModelContractPayments converts lines, numbering them in payment order.
func ToModelContractPayments(lines []domain.Allocation) []models.ContractPayment {
	out := make([]models.ContractPayment, len(lines))
	for i, l := range lines {
		out[i] = models.ContractPayment{
			AllocationID:    l.AllocationID,
			PaymentID:       l.PaymentID,
			LineNo:          i + 1,
			ContractID:      l.ContractID,
			AllocatedAmount: l.Amount,
			State:           string(l.State),
			AuditFields:     ToModelAuditFields(l.AuditFields),
		}
	}
	return out
}

// ToDomainAllocation converts a contract_payments row.
func ToDomainAllocation(m models.ContractPayment) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		PaymentID:    m.PaymentID,
		ContractID:   m.ContractID,
		Amount:       m.AllocatedAmount,
		State:        domain.AllocationState(m.State),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts a slice of contract_payments rows.
func ToDomainAllocationSlice(rows []models.ContractPayment) []domain.Allocation {
	out := make([]domain.Allocation, len(rows))
	for i, r := range rows {
		out[i] = ToDomainAllocation(r)
	}
	return out
}

// ToDomainPayment assembles a canonical payment from its header and line rows.
// A legacy header without line rows is read through domain.LegacyPayment.
func ToDomainPayment(m models.CustomerPayment, lines []models.ContractPayment) domain.Payment {
	if len(lines) == 0 && m.IsLegacy() {
		return domain.LegacyPayment{
			PaymentID:     m.PaymentID,
			CustomerID:    m.CustomerID,
			ContractID:    *m.LegacyContractID,
			Amount:        m.LegacyAmount.Decimal,
			PaymentDate:   m.PaymentDate,
			PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
			Note:          m.Note,
			IsDeleted:     m.IsDeleted,
			AuditFields:   ToDomainAuditFields(m.AuditFields),
		}.ToPayment()
	}

	return domain.Payment{
		PaymentID:      m.PaymentID,
		CustomerID:     m.CustomerID,
		PaymentDate:    m.PaymentDate,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		TotalAmount:    m.TotalAmount,
		Note:           m.Note,
		IdempotencyKey: m.IdempotencyKey,
		IsDeleted:      m.IsDeleted,
		Allocations:    ToDomainAllocationSlice(lines),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
