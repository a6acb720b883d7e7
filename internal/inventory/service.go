package inventory

import (
	"context"
	"errors"
	"fmt"

	"ms-storefront/internal/inventory/db"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
)

// TierStore is the read/reserve surface the checker needs.
type TierStore interface {
	GetTier(ctx context.Context, eventID int64, ticketType, tierTitle string) (*models.InventoryTier, error)
	ReserveQuantity(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) error
}

// Decision is the checker's admit/deny verdict. Reason is user-facing and
// only set on denial.
type Decision struct {
	Admitted  bool   `json:"admitted"`
	Reason    string `json:"reason,omitempty"`
	Available int    `json:"available,omitempty"`
}

// Denial reasons surfaced to the shopper.
const (
	ReasonInvalidQuantity = "requested quantity must be at least 1"
	ReasonEventSoldOut    = "this event is sold out"
	ReasonNotAvailable    = "tickets are not currently available for this selection"
	ReasonTierInactive    = "this tier is not currently available"
	ReasonSoldOut         = "sold out"
	ReasonCheckFailed     = "unable to check availability, please try again or contact support"
)

type Service struct {
	Store TierStore
	// SoldOutEventID is a legacy sentinel denied without querying the
	// store. Zero disables it.
	SoldOutEventID int64
	Logger         *logger.Logger
}

func NewService(store TierStore, soldOutEventID int64, log *logger.Logger) *Service {
	return &Service{Store: store, SoldOutEventID: soldOutEventID, Logger: log}
}

// Check performs one read against the tier store and decides whether the
// requested quantity can be admitted. It never mutates stock and fails
// closed when the store cannot be reached.
func (s *Service) Check(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) Decision {
	if qty <= 0 {
		return Decision{Reason: ReasonInvalidQuantity}
	}

	if s.SoldOutEventID != 0 && eventID == s.SoldOutEventID {
		s.Logger.LogAvailability(eventID, tierTitle, "denied by sold-out sentinel")
		return Decision{Reason: ReasonEventSoldOut}
	}

	tier, err := s.Store.GetTier(ctx, eventID, ticketType, tierTitle)
	if errors.Is(err, db.ErrTierNotFound) {
		return Decision{Reason: ReasonNotAvailable}
	}
	if err != nil {
		s.Logger.Error("INVENTORY", fmt.Sprintf("availability read failed for event %d tier %q: %v", eventID, tierTitle, err))
		return Decision{Reason: ReasonCheckFailed}
	}

	if !tier.Active {
		return Decision{Reason: ReasonTierInactive}
	}
	if tier.AvailableQuantity == 0 {
		return Decision{Reason: ReasonSoldOut}
	}
	if tier.AvailableQuantity < qty {
		return Decision{
			Reason:    fmt.Sprintf("only %d tickets available", tier.AvailableQuantity),
			Available: tier.AvailableQuantity,
		}
	}

	return Decision{Admitted: true, Available: tier.AvailableQuantity}
}

// Tier returns the authoritative tier record, used by checkout for
// pricing so a stale client-held price is never charged.
func (s *Service) Tier(ctx context.Context, eventID int64, ticketType, tierTitle string) (*models.InventoryTier, error) {
	return s.Store.GetTier(ctx, eventID, ticketType, tierTitle)
}

// Reserve atomically decrements the tier's available quantity at
// finalization time. Unlike Check, this is the write: a conflicting
// concurrent checkout surfaces here as db.ErrInsufficientStock.
func (s *Service) Reserve(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) error {
	if err := s.Store.ReserveQuantity(ctx, eventID, ticketType, tierTitle, qty); err != nil {
		return fmt.Errorf("reserve tickets: %w", err)
	}
	s.Logger.LogAvailability(eventID, tierTitle, fmt.Sprintf("reserved %d tickets", qty))
	return nil
}
