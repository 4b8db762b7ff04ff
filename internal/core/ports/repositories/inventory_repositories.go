package repositories

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryRepository keeps moving-average stock per item.
// Movements are keyed by (source, item): repeating a movement for the same source moves only
// the difference to the quantity booked before.
type InventoryRepository interface {
	Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error

	// Issue brings the source's issued quantity to qty and returns the total cost of qty.
	// It fails with apperrors.ErrInsufficientInventory unless allowNegative is set.
	Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef, allowNegative bool) (decimal.Decimal, error)

	OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error)
	AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error)
}
