package services

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventorySvc is the stock collaborator used by posting for stocked document lines.
type InventorySvc interface {
	Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error

	// Issue returns the total cost of the issued quantity. Issuing again for the same
	// source and item moves only the difference to the earlier quantity.
	Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef) (decimal.Decimal, error)

	OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error)
	AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error)
}
