package models

import "time"

type PeriodLock struct {
	LockID   int64     `db:"lock_id"`
	TenantID string    `db:"tenant_id"`
	LockDate time.Time `db:"lock_date"`
	Reason   string    `db:"reason"`
	AuditFields
}
