package db

import (
	"context"
	"database/sql"
	"errors"

	"ms-storefront/internal/models"

	"github.com/uptrace/bun"
)

var ErrCustomerNotFound = errors.New("customer not found")

type DB struct {
	Bun *bun.DB
}

// ---------------- CUSTOMERS ----------------

// FindCustomerByEmail looks up a customer by exact email match.
func (d *DB) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := d.Bun.NewSelect().
		Model(&customer).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (d *DB) CreateCustomer(ctx context.Context, customer models.Customer) error {
	_, err := d.Bun.NewInsert().Model(&customer).Exec(ctx)
	return err
}

// ---------------- ORDERS ----------------

func (d *DB) CreateOrder(ctx context.Context, order models.Order) error {
	_, err := d.Bun.NewInsert().Model(&order).Exec(ctx)
	return err
}

func (d *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("order_id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderWithItems fetches an order plus whichever kind of line items it
// owns. Orders carry one kind only, so at most one of the two lists is
// populated.
func (d *DB) GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error) {
	order, err := d.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &models.OrderWithItems{Order: *order}

	err = d.Bun.NewSelect().
		Model(&result.Tickets).
		Where("order_id = ?", id).
		Order("purchased_at").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	if len(result.Tickets) == 0 {
		err = d.Bun.NewSelect().
			Model(&result.Merchandise).
			Where("order_id = ?", id).
			Order("purchased_at").
			Scan(ctx)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ListOrdersByCustomer returns a customer's orders, newest first. Used by
// the admin back office.
func (d *DB) ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ---------------- LINE ITEMS ----------------

func (d *DB) CreateTicketLineItem(ctx context.Context, item models.TicketLineItem) error {
	_, err := d.Bun.NewInsert().Model(&item).Exec(ctx)
	return err
}

func (d *DB) CreateMerchLineItems(ctx context.Context, items []models.MerchLineItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := d.Bun.NewInsert().Model(&items).Exec(ctx)
	return err
}
