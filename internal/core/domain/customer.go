package domain

// UnknownCustomerName is shown when the customer service cannot supply a display name.
const UnknownCustomerName = "Unknown customer"

// Customer is the advisory view of a remote customer.
type Customer struct {
	CustomerID  int64  `json:"customerID"`
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
}
