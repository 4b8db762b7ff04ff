package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/core/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPeriodService_IsLocked(t *testing.T) {
	ctx := context.Background()
	lockDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	repo := new(MockPeriodLockRepository)
	repo.On("MaxLockDate", mock.Anything, "t").Return(&lockDate, nil)
	svc := services.NewPeriodService(repo)

	tests := []struct {
		date   time.Time
		locked bool
	}{
		{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		locked, err := svc.IsLocked(ctx, "t", tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.locked, locked, tt.date.String())
	}
}

func TestPeriodService_IsLocked_NoLocks(t *testing.T) {
	repo := new(MockPeriodLockRepository)
	repo.On("MaxLockDate", mock.Anything, "t").Return(nil, nil).Once()

	locked, err := services.NewPeriodService(repo).IsLocked(context.Background(), "t", time.Now())

	require.NoError(t, err)
	assert.False(t, locked)
}

func TestPeriodService_IsLocked_StorageError(t *testing.T) {
	repo := new(MockPeriodLockRepository)
	repo.On("MaxLockDate", mock.Anything, "t").Return(nil, assert.AnError).Once()

	_, err := services.NewPeriodService(repo).IsLocked(context.Background(), "t", time.Now())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestPeriodService_LockPeriod(t *testing.T) {
	repo := new(MockPeriodLockRepository)
	repo.On("SaveLock", mock.Anything, mock.MatchedBy(func(l domain.PeriodLock) bool {
		return l.TenantID == "t" && l.Reason == "Year end" && l.LockDate.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) && l.CreatedBy == "u"
	})).Return(&domain.PeriodLock{LockID: 3, TenantID: "t", Reason: "Year end"}, nil).Once()
	svc := services.NewPeriodService(repo)

	lock, err := svc.LockPeriod(context.Background(), "t", "u", dto.LockPeriodRequest{LockDate: "2024-12-31", Reason: "  Year end "})

	require.NoError(t, err)
	assert.Equal(t, int64(3), lock.LockID)
	repo.AssertExpectations(t)
}

func TestPeriodService_LockPeriod_Invalid(t *testing.T) {
	repo := new(MockPeriodLockRepository)
	svc := services.NewPeriodService(repo)

	_, err := svc.LockPeriod(context.Background(), "t", "u", dto.LockPeriodRequest{LockDate: "31/12/2024", Reason: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.LockPeriod(context.Background(), "t", "u", dto.LockPeriodRequest{LockDate: "2024-12-31", Reason: " "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertNotCalled(t, "SaveLock", mock.Anything, mock.Anything)
}
