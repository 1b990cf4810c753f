package rest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
)

type customerPayload struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullname"`
	CompanyName string `json:"companyName"`
}

// CustomerClient calls the customer service.
type CustomerClient struct {
	jsonClient
}

// NewCustomerClient creates a client for the customer service rooted at baseURL (e.g. http://host/api/customer).
func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	return &CustomerClient{jsonClient: newJSONClient("customer-service", baseURL, timeout)}
}

var _ clients.CustomerDirectory = (*CustomerClient)(nil)

// CustomerExists calls GET {base}/{id}/check-customer-exists, which answers with a bare boolean.
func (c *CustomerClient) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := c.getJSON(ctx, fmt.Sprintf("/%d/check-customer-exists", customerID), &exists)
	if errors.Is(err, errRemoteNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetCustomer calls GET {base}/{id}.
func (c *CustomerClient) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	var p customerPayload
	err := c.getJSON(ctx, fmt.Sprintf("/%d", customerID), &p)
	if errors.Is(err, errRemoteNotFound) {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrCustomerNotFound, customerID)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Customer{
		CustomerID:  p.ID,
		FullName:    p.FullName,
		CompanyName: p.CompanyName,
	}, nil
}
