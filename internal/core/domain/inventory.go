package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement records one receipt (positive quantity) or issue (negative quantity) of an item.
type StockMovement struct {
	MovementID int64           `json:"movementID"`
	TenantID   string          `json:"tenantID"`
	ItemID     int64           `json:"itemID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Source     SourceRef       `json:"source"`
	CreatedAt  time.Time       `json:"createdAt"`
}
