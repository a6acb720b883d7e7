package db

import (
	"context"
	"database/sql"
	"errors"

	"ms-storefront/internal/models"

	"github.com/uptrace/bun"
)

var (
	ErrTierNotFound      = errors.New("inventory tier not found")
	ErrInsufficientStock = errors.New("insufficient ticket stock")
)

type DB struct {
	Bun *bun.DB
}

// GetTier fetches one tier by event, ticket type and title. Titles are
// unique within event+type, so at most one row matches.
func (d *DB) GetTier(ctx context.Context, eventID int64, ticketType, tierTitle string) (*models.InventoryTier, error) {
	var tier models.InventoryTier
	err := d.Bun.NewSelect().
		Model(&tier).
		Where("event_id = ?", eventID).
		Where("ticket_type = ?", ticketType).
		Where("title = ?", tierTitle).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

// ReserveQuantity decrements available_quantity with a single conditional
// update, so the stock check and the decrement are one statement. Zero
// affected rows means another shopper got there first (or the tier is
// gone/inactive).
func (d *DB) ReserveQuantity(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.InventoryTier)(nil)).
		Set("available_quantity = available_quantity - ?", qty).
		Where("event_id = ?", eventID).
		Where("ticket_type = ?", ticketType).
		Where("title = ?", tierTitle).
		Where("active = ?", true).
		Where("available_quantity >= ?", qty).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// ListTiersForEvent returns all tiers for an event, for the tier-selection
// page.
func (d *DB) ListTiersForEvent(ctx context.Context, eventID int64) ([]models.InventoryTier, error) {
	var tiers []models.InventoryTier
	err := d.Bun.NewSelect().
		Model(&tiers).
		Where("event_id = ?", eventID).
		Order("ticket_type", "unit_price").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tiers, nil
}
