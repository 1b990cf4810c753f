package models

import "time"

// AuditFields mirrors the audit columns every table carries.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
