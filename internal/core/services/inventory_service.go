package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type inventoryService struct {
	BaseService
	repo          portsrepo.InventoryRepository
	settings      portsrepo.SettingsReader
	allowNegative bool
}

// NewInventoryService wraps the stock store. allowNegative is the default for tenants
// that do not set inventory_allow_negative_stock.
func NewInventoryService(repo portsrepo.InventoryRepository, settings portsrepo.SettingsReader, allowNegative bool) portssvc.InventorySvc {
	return &inventoryService{repo: repo, settings: settings, allowNegative: allowNegative}
}

var _ portssvc.InventorySvc = (*inventoryService)(nil)

func (s *inventoryService) Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error {
	if !qty.IsPositive() {
		return apperrors.NewValidationError(fmt.Sprintf("receipt quantity for item %d must be positive", itemID))
	}
	if unitCost.IsNegative() {
		return apperrors.NewValidationError(fmt.Sprintf("unit cost for item %d cannot be negative", itemID))
	}
	if err := s.repo.Receive(ctx, tenantID, itemID, qty, unitCost, source); err != nil {
		s.LogError(ctx, err, "Failed to receive stock", slog.Int64("item_id", itemID))
		return err
	}
	s.LogDebug(ctx, "Stock received", slog.Int64("item_id", itemID), slog.String("qty", qty.String()))
	return nil
}

func (s *inventoryService) Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("issue quantity for item %d must be positive", itemID))
	}
	allowNegative, err := s.negativeStockAllowed(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	cost, err := s.repo.Issue(ctx, tenantID, itemID, qty, source, allowNegative)
	if err != nil {
		s.LogWarn(ctx, "Stock issue refused", slog.Int64("item_id", itemID), slog.String("error", err.Error()))
		return decimal.Zero, err
	}
	s.LogDebug(ctx, "Stock issued", slog.Int64("item_id", itemID), slog.String("qty", qty.String()), slog.String("cost", cost.String()))
	return cost, nil
}

func (s *inventoryService) OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	return s.repo.OnHand(ctx, tenantID, itemID)
}

func (s *inventoryService) AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	return s.repo.AverageCost(ctx, tenantID, itemID)
}

func (s *inventoryService) negativeStockAllowed(ctx context.Context, tenantID string) (bool, error) {
	if s.settings == nil {
		return s.allowNegative, nil
	}
	raw, err := s.settings.GetSetting(ctx, tenantID, domain.SettingAllowNegativeStock)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", domain.SettingAllowNegativeStock, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.allowNegative, nil
	}
	allowed, err := strconv.ParseBool(raw)
	if err != nil {
		s.LogWarn(ctx, "Ignoring invalid negative stock setting", slog.String("value", raw))
		return s.allowNegative, nil
	}
	return allowed, nil
}
