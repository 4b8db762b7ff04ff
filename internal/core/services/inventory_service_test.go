package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_IssueUsesTenantSetting(t *testing.T) {
	source := domain.SourceRef{Module: "sales", Type: domain.DocInvoice, ID: 1}
	tests := []struct {
		name     string
		setting  string
		fallback bool
		expected bool
	}{
		{"unset uses configured default", "", true, true},
		{"tenant enables", "true", false, true},
		{"tenant disables", "0", true, false},
		{"invalid value uses default", "maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockInventoryRepository)
			settings := new(MockSettingsReader)
			settings.On("GetSetting", mock.Anything, "t", domain.SettingAllowNegativeStock).Return(tt.setting, nil).Once()
			repo.On("Issue", mock.Anything, "t", int64(3), dec("2"), source, tt.expected).Return(dec("24"), nil).Once()
			svc := services.NewInventoryService(repo, settings, tt.fallback)

			cost, err := svc.Issue(context.Background(), "t", 3, dec("2"), source)

			require.NoError(t, err)
			assert.Equal(t, "24", cost.String())
			repo.AssertExpectations(t)
		})
	}
}

func TestInventoryService_RejectsNonPositiveQuantities(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := services.NewInventoryService(repo, nil, false)
	source := domain.SourceRef{Type: domain.DocBill, ID: 2}

	_, err := svc.Issue(context.Background(), "t", 3, decimal.Zero, source)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.Receive(context.Background(), "t", 3, dec("-1"), dec("5"), source)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.Receive(context.Background(), "t", 3, dec("1"), dec("-5"), source)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Receive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryService_IssueInsufficient(t *testing.T) {
	repo := new(MockInventoryRepository)
	repo.On("Issue", mock.Anything, "t", int64(3), mock.Anything, mock.Anything, false).
		Return(decimal.Zero, apperrors.NewInsufficientInventoryError(3, "1", "5")).Once()
	svc := services.NewInventoryService(repo, nil, false)

	_, err := svc.Issue(context.Background(), "t", 3, dec("5"), domain.SourceRef{})

	assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
}

func TestInventoryService_Receive(t *testing.T) {
	repo := new(MockInventoryRepository)
	source := domain.SourceRef{Module: "purchases", Type: domain.DocBill, ID: 4}
	repo.On("Receive", mock.Anything, "t", int64(3), dec("10"), dec("12.5"), source).Return(nil).Once()
	repo.On("OnHand", mock.Anything, "t", int64(3)).Return(dec("10"), nil).Once()
	repo.On("AverageCost", mock.Anything, "t", int64(3)).Return(dec("12.5"), nil).Once()
	svc := services.NewInventoryService(repo, nil, false)

	require.NoError(t, svc.Receive(context.Background(), "t", 3, dec("10"), dec("12.5"), source))
	onHand, err := svc.OnHand(context.Background(), "t", 3)
	require.NoError(t, err)
	avg, err := svc.AverageCost(context.Background(), "t", 3)
	require.NoError(t, err)

	assert.Equal(t, "10", onHand.String())
	assert.Equal(t, "12.5", avg.String())
	repo.AssertExpectations(t)
}
