package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountsMap_Resolve(t *testing.T) {
	const tenant = "tenant-1"
	ctx := context.Background()

	tests := []struct {
		name     string
		setting  string
		setup    func(accounts *MockAccountReader)
		expected string
	}{
		{name: "empty setting uses default", setting: "", expected: "1100"},
		{name: "whitespace setting uses default", setting: "   ", expected: "1100"},
		{name: "literal code is trimmed", setting: " AR-CTRL ", expected: "AR-CTRL"},
		{
			name:    "account id is dereferenced",
			setting: "42",
			setup: func(accounts *MockAccountReader) {
				accounts.On("FindAccountByID", mock.Anything, tenant, int64(42)).Return(&domain.Account{AccountID: 42, Code: "1105"}, nil).Once()
			},
			expected: "1105",
		},
		{
			name:    "dangling account id falls back to default",
			setting: "43",
			setup: func(accounts *MockAccountReader) {
				accounts.On("FindAccountByID", mock.Anything, tenant, int64(43)).Return(nil, apperrors.NewNotFoundError("account 43")).Once()
			},
			expected: "1100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := new(MockSettingsReader)
			accounts := new(MockAccountReader)
			settings.On("GetSetting", mock.Anything, tenant, domain.SettingARAccount).Return(tt.setting, nil).Once()
			if tt.setup != nil {
				tt.setup(accounts)
			}
			svc := services.NewAccountsMapService(settings, accounts, nil)

			code, err := svc.Resolve(ctx, tenant, domain.SettingARAccount, "1100")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
			settings.AssertExpectations(t)
			accounts.AssertExpectations(t)
		})
	}
}

func TestAccountsMap_ResolvePropagatesStorageErrors(t *testing.T) {
	settings := new(MockSettingsReader)
	accounts := new(MockAccountReader)
	settings.On("GetSetting", mock.Anything, "t", domain.SettingAPAccount).Return("7", nil).Once()
	accounts.On("FindAccountByID", mock.Anything, "t", int64(7)).Return(nil, assert.AnError).Once()
	svc := services.NewAccountsMapService(settings, accounts, nil)

	_, err := svc.Resolve(context.Background(), "t", domain.SettingAPAccount, "2000")

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAccountsMap_ResolveSettingUsesConfiguredDefault(t *testing.T) {
	settings := new(MockSettingsReader)
	settings.On("GetSetting", mock.Anything, "t", domain.SettingSalesAccount).Return("", nil).Once()
	svc := services.NewAccountsMapService(settings, new(MockAccountReader), map[string]string{domain.SettingSalesAccount: "4000"})

	code, err := svc.ResolveSetting(context.Background(), "t", domain.SettingSalesAccount)

	require.NoError(t, err)
	assert.Equal(t, "4000", code)
}

func TestAccountsMap_ResolveByID(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountReader)
	svc := services.NewAccountsMapService(new(MockSettingsReader), accounts, nil)

	code, found, err := svc.ResolveByID(ctx, "t", nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, code)

	known, missing := int64(5), int64(6)
	accounts.On("FindAccountByID", mock.Anything, "t", known).Return(&domain.Account{AccountID: known, Code: "6000"}, nil).Once()
	accounts.On("FindAccountByID", mock.Anything, "t", missing).Return(nil, apperrors.NewNotFoundError("account 6")).Once()

	code, found, err = svc.ResolveByID(ctx, "t", &known)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "6000", code)

	code, found, err = svc.ResolveByID(ctx, "t", &missing)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, code)
}
