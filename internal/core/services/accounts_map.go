package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
)

type accountsMapService struct {
	BaseService
	settings portsrepo.SettingsReader
	accounts portsrepo.AccountReader
	defaults map[string]string
}

// NewAccountsMapService resolves settings against the chart of accounts. defaults maps
// setting keys to fallback account codes.
func NewAccountsMapService(settings portsrepo.SettingsReader, accounts portsrepo.AccountReader, defaults map[string]string) portssvc.AccountsMapSvc {
	if defaults == nil {
		defaults = map[string]string{}
	}
	return &accountsMapService{settings: settings, accounts: accounts, defaults: defaults}
}

var _ portssvc.AccountsMapSvc = (*accountsMapService)(nil)

func (s *accountsMapService) Resolve(ctx context.Context, tenantID string, settingKey string, defaultCode string) (string, error) {
	raw, err := s.settings.GetSetting(ctx, tenantID, settingKey)
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", settingKey, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultCode, nil
	}
	if !isAllDigits(raw) {
		return raw, nil
	}

	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.LogWarn(ctx, "Account setting is not a valid id, using default",
			slog.String("setting", settingKey), slog.String("value", raw))
		return defaultCode, nil
	}
	account, err := s.accounts.FindAccountByID(ctx, tenantID, accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogWarn(ctx, "Account setting references a missing account, using default",
			slog.String("setting", settingKey), slog.Int64("account_id", accountID))
		return defaultCode, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load account %d for setting %s: %w", accountID, settingKey, err)
	}
	return account.Code, nil
}

func (s *accountsMapService) ResolveSetting(ctx context.Context, tenantID string, settingKey string) (string, error) {
	return s.Resolve(ctx, tenantID, settingKey, s.defaults[settingKey])
}

func (s *accountsMapService) ResolveByID(ctx context.Context, tenantID string, accountID *int64) (string, bool, error) {
	if accountID == nil {
		return "", false, nil
	}
	account, err := s.accounts.FindAccountByID(ctx, tenantID, *accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load account %d: %w", *accountID, err)
	}
	return account.Code, true, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
