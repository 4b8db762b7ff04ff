package repositories

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// AccountReader defines read operations on the chart of accounts.
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound when the account does not exist for the tenant.
	FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error)

	// FindAccountsByCodes returns the accounts that exist, keyed by code. Missing codes are simply absent.
	FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)
}

// SettingsReader reads tenant configuration values. Absent keys yield "".
type SettingsReader interface {
	GetSetting(ctx context.Context, tenantID string, key string) (string, error)
}
