package services

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/dto"
)

type PeriodSvc interface {
	// IsLocked reports whether date falls on or before the tenant's latest lock date.
	IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error)

	LockPeriod(ctx context.Context, tenantID string, userID string, req dto.LockPeriodRequest) (*domain.PeriodLock, error)
	ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error)
}
