package db

import (
	"context"
	"database/sql"
	"errors"

	"ms-storefront/internal/models"

	"github.com/uptrace/bun"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrItemNotFound  = errors.New("merch item not found")
)

// DB holds the catalog store: events, inventory tiers, merchandise, and
// site content. Read paths serve the public storefront, write paths serve
// the admin back office.
type DB struct {
	Bun *bun.DB
}

// ---------------- EVENTS ----------------

func (d *DB) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().Model(&event).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns events in start order, soonest first.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().Model(&events).Order("starts_at").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

func (d *DB) UpdateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewUpdate().Model(event).WherePK().Exec(ctx)
	return err
}

func (d *DB) DeleteEvent(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.Event)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ---------------- INVENTORY TIERS ----------------

func (d *DB) CreateTier(ctx context.Context, tier *models.InventoryTier) error {
	_, err := d.Bun.NewInsert().Model(tier).Exec(ctx)
	return err
}

func (d *DB) UpdateTier(ctx context.Context, tier *models.InventoryTier) error {
	_, err := d.Bun.NewUpdate().Model(tier).WherePK().Exec(ctx)
	return err
}

func (d *DB) DeleteTier(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.InventoryTier)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ---------------- MERCHANDISE ----------------

func (d *DB) GetMerchItem(ctx context.Context, id int64) (*models.MerchItem, error) {
	var item models.MerchItem
	err := d.Bun.NewSelect().Model(&item).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMerchItems returns merchandise, optionally filtered by category.
func (d *DB) ListMerchItems(ctx context.Context, category string) ([]models.MerchItem, error) {
	var items []models.MerchItem
	query := d.Bun.NewSelect().Model(&items).Order("name")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return items, nil
}

func (d *DB) CreateMerchItem(ctx context.Context, item *models.MerchItem) error {
	_, err := d.Bun.NewInsert().Model(item).Exec(ctx)
	return err
}

func (d *DB) UpdateMerchItem(ctx context.Context, item *models.MerchItem) error {
	_, err := d.Bun.NewUpdate().Model(item).WherePK().Exec(ctx)
	return err
}

func (d *DB) DeleteMerchItem(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.MerchItem)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ---------------- SITE CONTENT ----------------

func (d *DB) ListTestimonials(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	var rows []models.Testimonial
	query := d.Bun.NewSelect().Model(&rows).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) CreateTestimonial(ctx context.Context, row *models.Testimonial) error {
	_, err := d.Bun.NewInsert().Model(row).Exec(ctx)
	return err
}

func (d *DB) UpdateTestimonial(ctx context.Context, row *models.Testimonial) error {
	_, err := d.Bun.NewUpdate().Model(row).WherePK().Exec(ctx)
	return err
}

func (d *DB) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.Testimonial)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (d *DB) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	var rows []models.FAQ
	err := d.Bun.NewSelect().Model(&rows).Order("position").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) CreateFAQ(ctx context.Context, row *models.FAQ) error {
	_, err := d.Bun.NewInsert().Model(row).Exec(ctx)
	return err
}

func (d *DB) UpdateFAQ(ctx context.Context, row *models.FAQ) error {
	_, err := d.Bun.NewUpdate().Model(row).WherePK().Exec(ctx)
	return err
}

func (d *DB) DeleteFAQ(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.FAQ)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (d *DB) ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	var rows []models.GalleryImage
	err := d.Bun.NewSelect().Model(&rows).Order("position").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) CreateGalleryImage(ctx context.Context, row *models.GalleryImage) error {
	_, err := d.Bun.NewInsert().Model(row).Exec(ctx)
	return err
}

func (d *DB) DeleteGalleryImage(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().Model((*models.GalleryImage)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ---------------- SALES SUMMARY ----------------

// SalesSummary aggregates order revenue and ticket volume for one event.
type SalesSummary struct {
	EventID      int64   `json:"event_id"`
	TicketsSold  int     `json:"tickets_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int     `json:"order_count"`
}

// GetSalesSummary reports ticket sales for one event, admin dashboard use.
func (d *DB) GetSalesSummary(ctx context.Context, eventID int64) (*SalesSummary, error) {
	summary := &SalesSummary{EventID: eventID}

	err := d.Bun.NewRaw(`
		SELECT
			COALESCE(SUM(quantity), 0) AS tickets_sold,
			COUNT(DISTINCT order_id) AS order_count
		FROM ticket_line_items
		WHERE event_id = ?`, eventID).
		Scan(ctx, &summary.TicketsSold, &summary.OrderCount)
	if err != nil {
		return nil, err
	}

	err = d.Bun.NewRaw(`
		SELECT COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		WHERE o.order_id IN (
			SELECT order_id FROM ticket_line_items WHERE event_id = ?
		)`, eventID).
		Scan(ctx, &summary.TotalRevenue)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
