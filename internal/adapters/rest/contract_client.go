package rest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	"github.com/shopspring/decimal"
)

type contractPayload struct {
	ID           int64           `json:"id"`
	ContractCode string          `json:"contractCode"`
	CustomerID   int64           `json:"customerId"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       int             `json:"status"`
	IsDeleted    bool            `json:"isDeleted"`
}

func (p contractPayload) toDomain() domain.Contract {
	return domain.Contract{
		ContractID:   p.ID,
		ContractCode: p.ContractCode,
		CustomerID:   p.CustomerID,
		TotalValue:   p.TotalAmount,
		Status:       domain.ContractStatus(p.Status),
	}
}

// ContractClient calls the customer contract service.
type ContractClient struct {
	jsonClient
}

// NewContractClient creates a client for the contract service rooted at baseURL (e.g. http://host/api/customer-contract).
func NewContractClient(baseURL string, timeout time.Duration) *ContractClient {
	return &ContractClient{jsonClient: newJSONClient("contract-service", baseURL, timeout)}
}

var _ clients.ContractDirectory = (*ContractClient)(nil)

// GetContract calls GET {base}/{id}. Deleted contracts count as missing.
func (c *ContractClient) GetContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	var p contractPayload
	err := c.getJSON(ctx, fmt.Sprintf("/%d", contractID), &p)
	if errors.Is(err, errRemoteNotFound) || (err == nil && p.IsDeleted) {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrContractNotFound, contractID)
	}
	if err != nil {
		return nil, err
	}
	contract := p.toDomain()
	return &contract, nil
}

// ContractExists calls GET {base}/{id}/check-contract-exists.
func (c *ContractClient) ContractExists(ctx context.Context, contractID int64) (bool, error) {
	var exists bool
	err := c.getJSON(ctx, fmt.Sprintf("/%d/check-contract-exists", contractID), &exists)
	if errors.Is(err, errRemoteNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListContractsByCustomer calls GET {base}/customer/{customerId}.
func (c *ContractClient) ListContractsByCustomer(ctx context.Context, customerID int64) ([]domain.Contract, error) {
	var payloads []contractPayload
	err := c.getJSON(ctx, fmt.Sprintf("/customer/%d", customerID), &payloads)
	if errors.Is(err, errRemoteNotFound) {
		return []domain.Contract{}, nil
	}
	if err != nil {
		return nil, err
	}

	contracts := make([]domain.Contract, 0, len(payloads))
	for _, p := range payloads {
		if p.IsDeleted {
			continue
		}
		contracts = append(contracts, p.toDomain())
	}
	return contracts, nil
}
