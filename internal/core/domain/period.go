package domain

import "time"

// PeriodLock freezes every entry dated on or before LockDate. Only the latest lock matters.
type PeriodLock struct {
	LockID   int64     `json:"lockID"`
	TenantID string    `json:"tenantID"`
	LockDate time.Time `json:"lockDate"`
	Reason   string    `json:"reason"`
	AuditFields
}
