package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/models"

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
	require.NoError(t, bunDB.ResetModel(context.Background(),
		(*models.Event)(nil),
		(*models.InventoryTier)(nil),
		(*models.MerchItem)(nil),
		(*models.Testimonial)(nil),
		(*models.FAQ)(nil),
		(*models.GalleryImage)(nil),
		(*models.Order)(nil),
		(*models.TicketLineItem)(nil),
	))

	return &db.DB{Bun: bunDB}
}

func TestEventCRUD(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	event := &models.Event{
		Title:            "Summer Fest",
		Venue:            "Riverside Park",
		StartsAt:         time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
		FoodServicePrice: 15,
	}
	require.NoError(t, d.CreateEvent(ctx, event))
	require.NotZero(t, event.ID)

	got, err := d.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Fest", got.Title)

	got.SoldOut = true
	require.NoError(t, d.UpdateEvent(ctx, got))

	got, err = d.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.SoldOut)

	require.NoError(t, d.DeleteEvent(ctx, event.ID))
	_, err = d.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, db.ErrEventNotFound)
}

func TestListEventsOrdering(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	later := &models.Event{Title: "Later", StartsAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	sooner := &models.Event{Title: "Sooner", StartsAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, d.CreateEvent(ctx, later))
	require.NoError(t, d.CreateEvent(ctx, sooner))

	events, err := d.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Title)
}

func TestMerchItemCRUD(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	item := &models.MerchItem{Name: "Tour Hoodie", Category: "apparel", UnitPrice: 20, InStock: true}
	require.NoError(t, d.CreateMerchItem(ctx, item))
	require.NotZero(t, item.ID)

	got, err := d.GetMerchItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.UnitPrice)

	items, err := d.ListMerchItems(ctx, "apparel")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = d.ListMerchItems(ctx, "posters")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = d.GetMerchItem(ctx, 999)
	assert.ErrorIs(t, err, db.ErrItemNotFound)
}

func TestTestimonialPublishedFilter(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, d.CreateTestimonial(ctx, &models.Testimonial{Author: "Ada", Quote: "Great show", Published: true}))
	require.NoError(t, d.CreateTestimonial(ctx, &models.Testimonial{Author: "Bob", Quote: "Pending review", Published: false}))

	all, err := d.ListTestimonials(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := d.ListTestimonials(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Ada", published[0].Author)
}

func TestGetSalesSummary(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	orders := []models.Order{
		{OrderID: "o-1", CustomerID: "c-1", TotalAmount: 126, PaymentStatus: models.PaymentCompleted, CreatedAt: time.Now()},
		{OrderID: "o-2", CustomerID: "c-2", TotalAmount: 52.5, PaymentStatus: models.PaymentCompleted, CreatedAt: time.Now()},
	}
	for i := range orders {
		_, err := d.Bun.NewInsert().Model(&orders[i]).Exec(ctx)
		require.NoError(t, err)
	}

	items := []models.TicketLineItem{
		{ID: "li-1", OrderID: "o-1", EventID: 7, TicketType: "general", TierTitle: "Standard", Quantity: 3, UnitPrice: 25, PurchasedAt: time.Now()},
		{ID: "li-2", OrderID: "o-2", EventID: 7, TicketType: "vip", TierTitle: "Front Row", Quantity: 1, UnitPrice: 50, PurchasedAt: time.Now()},
		{ID: "li-3", OrderID: "o-2", EventID: 8, TicketType: "general", TierTitle: "Other Event", Quantity: 2, UnitPrice: 10, PurchasedAt: time.Now()},
	}
	for i := range items {
		_, err := d.Bun.NewInsert().Model(&items[i]).Exec(ctx)
		require.NoError(t, err)
	}

	summary, err := d.GetSalesSummary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TicketsSold)
	assert.Equal(t, 2, summary.OrderCount)
	assert.InDelta(t, 178.5, summary.TotalRevenue, 0.0001)
}
