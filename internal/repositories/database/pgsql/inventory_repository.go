package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// costPrecision is the number of decimals kept on average cost.
const costPrecision = 6

// inventoryRepository keeps on-hand quantity and moving-average cost per item.
type inventoryRepository struct {
	BaseRepository
}

func newInventoryRepository(db DB) *inventoryRepository {
	return &inventoryRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.InventoryRepository = (*inventoryRepository)(nil)

const (
	lockItemQuery = `
		SELECT on_hand, average_cost FROM inventory_items
		WHERE tenant_id = $1 AND item_id = $2
		FOR UPDATE;`

	findMovementQuery = `
		SELECT quantity, unit_cost FROM stock_movements
		WHERE tenant_id = $1 AND source_type = $2 AND source_id = $3 AND item_id = $4;`

	insertMovementQuery = `
		INSERT INTO stock_movements (tenant_id, item_id, quantity, unit_cost, source_type, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now());`

	updateMovementQuery = `
		UPDATE stock_movements SET quantity = $5, unit_cost = $6
		WHERE tenant_id = $1 AND source_type = $2 AND source_id = $3 AND item_id = $4;`

	updateItemQuery = `
		UPDATE inventory_items SET on_hand = $3, average_cost = $4
		WHERE tenant_id = $1 AND item_id = $2;`
)

type stockLevel struct {
	onHand, averageCost decimal.Decimal
}

func lockItem(ctx context.Context, tx pgx.Tx, tenantID string, itemID int64) (stockLevel, error) {
	var level stockLevel
	err := tx.QueryRow(ctx, lockItemQuery, tenantID, itemID).Scan(&level.onHand, &level.averageCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return level, apperrors.NewNotFoundError(fmt.Sprintf("inventory item %d", itemID))
	}
	if err != nil {
		return level, apperrors.NewStorageError(fmt.Sprintf("failed to lock inventory item %d", itemID), err)
	}
	return level, nil
}

// priorMovement returns the movement already booked for source, if any.
func priorMovement(ctx context.Context, tx pgx.Tx, tenantID string, itemID int64, source domain.SourceRef) (*domain.StockMovement, error) {
	m := &domain.StockMovement{TenantID: tenantID, ItemID: itemID, Source: source}
	err := tx.QueryRow(ctx, findMovementQuery, tenantID, string(source.Type), source.ID, itemID).Scan(&m.Quantity, &m.UnitCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read stock movement", err)
	}
	return m, nil
}

// applyMovement records the movement for source, inserting it or rewriting the prior one,
// and stores the item's new level.
func applyMovement(ctx context.Context, tx pgx.Tx, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef, prior *domain.StockMovement, next stockLevel) error {
	var err error
	if prior == nil {
		_, err = tx.Exec(ctx, insertMovementQuery, tenantID, itemID, qty, unitCost, string(source.Type), source.ID)
	} else {
		_, err = tx.Exec(ctx, updateMovementQuery, tenantID, string(source.Type), source.ID, itemID, qty, unitCost)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to record stock movement", err)
	}
	if _, err := tx.Exec(ctx, updateItemQuery, tenantID, itemID, next.onHand, next.averageCost); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to update inventory item %d", itemID), err)
	}
	return nil
}

// Receive adds stock and re-weights the average cost. When the source already received
// this item, the earlier receipt is taken back out at its own cost and replaced by this one.
func (r *inventoryRepository) Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error {
	unitCost = unitCost.Round(costPrecision)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		level, err := lockItem(ctx, tx, tenantID, itemID)
		if err != nil {
			return err
		}
		prior, err := priorMovement(ctx, tx, tenantID, itemID, source)
		if err != nil {
			return err
		}

		base := level
		if prior != nil {
			if prior.Quantity.Equal(qty) && prior.UnitCost.Equal(unitCost) {
				return nil
			}
			base.onHand = level.onHand.Sub(prior.Quantity)
			value := level.onHand.Mul(level.averageCost).Sub(prior.Quantity.Mul(prior.UnitCost))
			if base.onHand.IsPositive() {
				base.averageCost = value.Div(base.onHand)
			}
		}

		next := stockLevel{onHand: base.onHand.Add(qty), averageCost: unitCost}
		if base.onHand.IsPositive() && next.onHand.IsPositive() {
			value := base.onHand.Mul(base.averageCost).Add(qty.Mul(unitCost))
			next.averageCost = value.Div(next.onHand)
		}
		next.averageCost = next.averageCost.Round(costPrecision)
		return applyMovement(ctx, tx, tenantID, itemID, qty, unitCost, source, prior, next)
	})
}

// Issue removes stock at the current average cost and returns the cost of qty.
// When the source already issued this item, only the difference moves: extra units leave
// at the current average cost and returned units come back at the cost they left with.
func (r *inventoryRepository) Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef, allowNegative bool) (decimal.Decimal, error) {
	var cost decimal.Decimal
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		level, err := lockItem(ctx, tx, tenantID, itemID)
		if err != nil {
			return err
		}
		prior, err := priorMovement(ctx, tx, tenantID, itemID, source)
		if err != nil {
			return err
		}

		issued, issuedCost := decimal.Zero, decimal.Zero
		if prior != nil {
			issued = prior.Quantity.Neg()
			issuedCost = prior.UnitCost
		}
		delta := qty.Sub(issued)
		next := level

		switch {
		case delta.IsZero():
			cost = issued.Mul(issuedCost)
			return nil
		case delta.IsPositive():
			if !allowNegative && level.onHand.LessThan(delta) {
				return apperrors.NewInsufficientInventoryError(itemID, level.onHand.String(), delta.String())
			}
			cost = issued.Mul(issuedCost).Add(delta.Mul(level.averageCost))
			next.onHand = level.onHand.Sub(delta)
		default:
			returned := delta.Neg()
			cost = qty.Mul(issuedCost)
			next.onHand = level.onHand.Add(returned)
			if level.onHand.IsPositive() && next.onHand.IsPositive() {
				value := level.onHand.Mul(level.averageCost).Add(returned.Mul(issuedCost))
				next.averageCost = value.Div(next.onHand).Round(costPrecision)
			} else {
				next.averageCost = issuedCost
			}
		}

		unitCost := cost.Div(qty).Round(costPrecision)
		return applyMovement(ctx, tx, tenantID, itemID, qty.Neg(), unitCost, source, prior, next)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

func (r *inventoryRepository) level(ctx context.Context, tenantID string, itemID int64) (stockLevel, error) {
	var level stockLevel
	err := r.Pool.QueryRow(ctx,
		`SELECT on_hand, average_cost FROM inventory_items WHERE tenant_id = $1 AND item_id = $2;`,
		tenantID, itemID,
	).Scan(&level.onHand, &level.averageCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return level, apperrors.NewNotFoundError(fmt.Sprintf("inventory item %d", itemID))
	}
	if err != nil {
		return level, apperrors.NewStorageError(fmt.Sprintf("failed to read inventory item %d", itemID), err)
	}
	return level, nil
}

func (r *inventoryRepository) OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	level, err := r.level(ctx, tenantID, itemID)
	return level.onHand, err
}

func (r *inventoryRepository) AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	level, err := r.level(ctx, tenantID, itemID)
	return level.averageCost, err
}
