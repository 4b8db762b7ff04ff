package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
)

type periodService struct {
	BaseService
	repo portsrepo.PeriodLockRepositoryFacade
	now  func() time.Time
}

func NewPeriodService(repo portsrepo.PeriodLockRepositoryFacade) portssvc.PeriodSvc {
	return &periodService{repo: repo, now: time.Now}
}

var _ portssvc.PeriodSvc = (*periodService)(nil)

// IsLocked compares calendar days only; the time of day of date is ignored.
func (s *periodService) IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	lockDate, err := s.repo.MaxLockDate(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("failed to read lock date: %w", err)
	}
	if lockDate == nil {
		return false, nil
	}
	return !domain.DateOnly(date).After(domain.DateOnly(*lockDate)), nil
}

func (s *periodService) LockPeriod(ctx context.Context, tenantID string, userID string, req dto.LockPeriodRequest) (*domain.PeriodLock, error) {
	lockDate, err := time.Parse(time.DateOnly, req.LockDate)
	if err != nil {
		return nil, apperrors.NewValidationError("lockDate must be YYYY-MM-DD")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required")
	}

	now := s.now().UTC()
	saved, err := s.repo.SaveLock(ctx, domain.PeriodLock{
		TenantID: tenantID,
		LockDate: lockDate,
		Reason:   reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save period lock", slog.String("lock_date", req.LockDate))
		return nil, fmt.Errorf("failed to save period lock: %w", err)
	}

	s.LogInfo(ctx, "Period locked", slog.String("lock_date", req.LockDate), slog.String("reason", reason))
	return saved, nil
}

func (s *periodService) ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error) {
	locks, err := s.repo.ListLocks(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period locks: %w", err)
	}
	return locks, nil
}
