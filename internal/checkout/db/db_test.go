package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ms-storefront/internal/checkout/db"
	"ms-storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *db.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.Customer)(nil),
		(*models.Order)(nil),
		(*models.TicketLineItem)(nil),
		(*models.MerchLineItem)(nil),
	} {
		require.NoError(t, bunDB.ResetModel(ctx, model))
	}

	return &db.DB{Bun: bunDB}
}

func TestFindCustomerByEmail(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	_, err := d.FindCustomerByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, db.ErrCustomerNotFound)

	customer := models.Customer{
		ID:       uuid.NewString(),
		FullName: "Jamie Ray",
		Email:    "jamie@example.com",
		Phone:    "555-0101",
	}
	require.NoError(t, d.CreateCustomer(ctx, customer))

	found, err := d.FindCustomerByEmail(ctx, "jamie@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)
	assert.Equal(t, "Jamie Ray", found.FullName)
}

func TestCreateAndGetOrderWithTicketItems(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	order := models.Order{
		OrderID:       uuid.NewString(),
		CustomerID:    uuid.NewString(),
		TotalAmount:   126.0,
		PaymentStatus: models.PaymentCompleted,
		Source:        "web-storefront",
		CreatedAt:     time.Now().Round(time.Second),
	}
	require.NoError(t, d.CreateOrder(ctx, order))

	item := models.TicketLineItem{
		ID:                  "li_1",
		OrderID:             order.OrderID,
		EventID:             7,
		TicketType:          models.TicketTypeGeneral,
		TierTitle:           "Standard",
		Quantity:            3,
		UnitPrice:           25,
		IncludesFoodService: true,
		FoodServicePrice:    15,
		PurchasedAt:         time.Now().Round(time.Second),
	}
	require.NoError(t, d.CreateTicketLineItem(ctx, item))

	got, err := d.GetOrderWithItems(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, got.Order.OrderID)
	assert.Equal(t, models.PaymentCompleted, got.Order.PaymentStatus)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, "Standard", got.Tickets[0].TierTitle)
	assert.Empty(t, got.Merchandise)
}

func TestCreateAndGetOrderWithMerchItems(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	order := models.Order{
		OrderID:       uuid.NewString(),
		CustomerID:    uuid.NewString(),
		TotalAmount:   48.2,
		PaymentStatus: models.PaymentCompleted,
		CreatedAt:     time.Now().Round(time.Second),
	}
	require.NoError(t, d.CreateOrder(ctx, order))

	items := []models.MerchLineItem{
		{ID: "li_a", OrderID: order.OrderID, ItemID: 1, ItemName: "Tour Tee", Quantity: 2, UnitPrice: 20, Size: "M"},
		{ID: "li_b", OrderID: order.OrderID, ItemID: 2, ItemName: "Poster", Quantity: 1, UnitPrice: 8.2},
	}
	require.NoError(t, d.CreateMerchLineItems(ctx, items))

	got, err := d.GetOrderWithItems(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Empty(t, got.Tickets)
	require.Len(t, got.Merchandise, 2)
	assert.Equal(t, "Tour Tee", got.Merchandise[0].ItemName)
}

func TestListOrdersByCustomer(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	customerID := uuid.NewString()

	for i := 0; i < 3; i++ {
		require.NoError(t, d.CreateOrder(ctx, models.Order{
			OrderID:       uuid.NewString(),
			CustomerID:    customerID,
			TotalAmount:   float64(10 * (i + 1)),
			PaymentStatus: models.PaymentCompleted,
			CreatedAt:     time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	orders, err := d.ListOrdersByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	// Newest first.
	assert.True(t, orders[0].CreatedAt.After(orders[2].CreatedAt))
}
