package services

import "context"

// AccountsMapSvc resolves tenant settings to account codes. It never writes.
type AccountsMapSvc interface {
	// Resolve returns defaultCode for an empty setting, the code of the referenced account
	// for an all-digit setting (defaultCode when that account does not exist), and the
	// trimmed literal otherwise.
	Resolve(ctx context.Context, tenantID string, settingKey string, defaultCode string) (string, error)

	// ResolveSetting is Resolve with the configured default for settingKey.
	ResolveSetting(ctx context.Context, tenantID string, settingKey string) (string, error)

	// ResolveByID dereferences an optional account id. found is false for a nil or dangling id.
	ResolveByID(ctx context.Context, tenantID string, accountID *int64) (code string, found bool, err error)
}
