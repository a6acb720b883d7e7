package catalog

import (
	"context"
	"errors"
	"fmt"

	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
)

var ErrInvalidInput = errors.New("invalid input")

// Store is the catalog persistence surface the service drives.
type Store interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error

	CreateTier(ctx context.Context, tier *models.InventoryTier) error
	UpdateTier(ctx context.Context, tier *models.InventoryTier) error
	DeleteTier(ctx context.Context, id int64) error

	GetMerchItem(ctx context.Context, id int64) (*models.MerchItem, error)
	ListMerchItems(ctx context.Context, category string) ([]models.MerchItem, error)
	CreateMerchItem(ctx context.Context, item *models.MerchItem) error
	UpdateMerchItem(ctx context.Context, item *models.MerchItem) error
	DeleteMerchItem(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, row *models.Testimonial) error
	UpdateTestimonial(ctx context.Context, row *models.Testimonial) error
	DeleteTestimonial(ctx context.Context, id int64) error

	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, row *models.FAQ) error
	UpdateFAQ(ctx context.Context, row *models.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error

	ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, row *models.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id int64) error

	GetSalesSummary(ctx context.Context, eventID int64) (*db.SalesSummary, error)
}

// Service validates admin catalog writes and serves storefront reads.
type Service struct {
	Store  Store
	Logger *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{Store: store, Logger: log}
}

// ---------------- EVENTS ----------------

func (s *Service) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.Store.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.Store.ListEvents(ctx)
}

func (s *Service) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Title == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: event start time is required", ErrInvalidInput)
	}
	if err := s.Store.CreateEvent(ctx, event); err != nil {
		return err
	}
	s.Logger.LogDatabase("insert", "events", event.Title)
	return nil
}

func (s *Service) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == 0 {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	return s.Store.UpdateEvent(ctx, event)
}

func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	s.Logger.LogDatabase("delete", "events", fmt.Sprintf("event %d", id))
	return s.Store.DeleteEvent(ctx, id)
}

// ---------------- INVENTORY TIERS ----------------

func (s *Service) CreateTier(ctx context.Context, tier *models.InventoryTier) error {
	if tier.EventID == 0 || tier.Title == "" {
		return fmt.Errorf("%w: tier needs an event and a title", ErrInvalidInput)
	}
	if tier.UnitPrice < 0 || tier.InitialQuantity < 0 {
		return fmt.Errorf("%w: tier price and quantity must be non-negative", ErrInvalidInput)
	}
	if tier.AvailableQuantity == 0 {
		tier.AvailableQuantity = tier.InitialQuantity
	}
	if err := s.Store.CreateTier(ctx, tier); err != nil {
		return err
	}
	s.Logger.LogDatabase("insert", "inventory_tiers", fmt.Sprintf("event %d tier %s", tier.EventID, tier.Title))
	return nil
}

func (s *Service) UpdateTier(ctx context.Context, tier *models.InventoryTier) error {
	if tier.ID == 0 {
		return fmt.Errorf("%w: tier id is required", ErrInvalidInput)
	}
	if tier.AvailableQuantity > tier.InitialQuantity {
		return fmt.Errorf("%w: available quantity cannot exceed initial quantity", ErrInvalidInput)
	}
	return s.Store.UpdateTier(ctx, tier)
}

func (s *Service) DeleteTier(ctx context.Context, id int64) error {
	return s.Store.DeleteTier(ctx, id)
}

// ---------------- MERCHANDISE ----------------

func (s *Service) GetMerchItem(ctx context.Context, id int64) (*models.MerchItem, error) {
	return s.Store.GetMerchItem(ctx, id)
}

func (s *Service) ListMerchItems(ctx context.Context, category string) ([]models.MerchItem, error) {
	return s.Store.ListMerchItems(ctx, category)
}

func (s *Service) CreateMerchItem(ctx context.Context, item *models.MerchItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("%w: item price must be non-negative", ErrInvalidInput)
	}
	if err := s.Store.CreateMerchItem(ctx, item); err != nil {
		return err
	}
	s.Logger.LogDatabase("insert", "merch_items", item.Name)
	return nil
}

func (s *Service) UpdateMerchItem(ctx context.Context, item *models.MerchItem) error {
	if item.ID == 0 {
		return fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	return s.Store.UpdateMerchItem(ctx, item)
}

func (s *Service) DeleteMerchItem(ctx context.Context, id int64) error {
	return s.Store.DeleteMerchItem(ctx, id)
}

// ---------------- SITE CONTENT ----------------

func (s *Service) ListTestimonials(ctx context.Context, publishedOnly bool) ([]models.Testimonial, error) {
	return s.Store.ListTestimonials(ctx, publishedOnly)
}

func (s *Service) CreateTestimonial(ctx context.Context, row *models.Testimonial) error {
	if row.Author == "" || row.Quote == "" {
		return fmt.Errorf("%w: testimonial needs an author and a quote", ErrInvalidInput)
	}
	return s.Store.CreateTestimonial(ctx, row)
}

func (s *Service) UpdateTestimonial(ctx context.Context, row *models.Testimonial) error {
	if row.ID == 0 {
		return fmt.Errorf("%w: testimonial id is required", ErrInvalidInput)
	}
	return s.Store.UpdateTestimonial(ctx, row)
}

func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	return s.Store.DeleteTestimonial(ctx, id)
}

func (s *Service) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	return s.Store.ListFAQs(ctx)
}

func (s *Service) CreateFAQ(ctx context.Context, row *models.FAQ) error {
	if row.Question == "" || row.Answer == "" {
		return fmt.Errorf("%w: FAQ needs a question and an answer", ErrInvalidInput)
	}
	return s.Store.CreateFAQ(ctx, row)
}

func (s *Service) UpdateFAQ(ctx context.Context, row *models.FAQ) error {
	if row.ID == 0 {
		return fmt.Errorf("%w: FAQ id is required", ErrInvalidInput)
	}
	return s.Store.UpdateFAQ(ctx, row)
}

func (s *Service) DeleteFAQ(ctx context.Context, id int64) error {
	return s.Store.DeleteFAQ(ctx, id)
}

func (s *Service) ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	return s.Store.ListGalleryImages(ctx)
}

func (s *Service) CreateGalleryImage(ctx context.Context, row *models.GalleryImage) error {
	if row.URL == "" {
		return fmt.Errorf("%w: image URL is required", ErrInvalidInput)
	}
	return s.Store.CreateGalleryImage(ctx, row)
}

func (s *Service) DeleteGalleryImage(ctx context.Context, id int64) error {
	return s.Store.DeleteGalleryImage(ctx, id)
}

// ---------------- SALES ----------------

func (s *Service) GetSalesSummary(ctx context.Context, eventID int64) (*db.SalesSummary, error) {
	return s.Store.GetSalesSummary(ctx, eventID)
}
