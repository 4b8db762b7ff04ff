package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

type PeriodLockReader interface {
	// MaxLockDate returns the latest lock date for the tenant, nil when nothing is locked.
	MaxLockDate(ctx context.Context, tenantID string) (*time.Time, error)

	ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error)
}

type PeriodLockWriter interface {
	SaveLock(ctx context.Context, lock domain.PeriodLock) (*domain.PeriodLock, error)
}

type PeriodLockRepositoryFacade interface {
	PeriodLockReader
	PeriodLockWriter
}
