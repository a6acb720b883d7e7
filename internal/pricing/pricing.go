package pricing

import "fmt"

// Totals computation for checkout. Pure functions, no I/O: the checkout
// service recomputes these with authoritative store-held prices on every
// attempt, never trusting a client-held figure. Intermediate arithmetic
// stays in full float64 precision; rounding happens only in FormatAmount
// at the display boundary.

// TicketBreakdown is the transient pricing result for a ticket order.
type TicketBreakdown struct {
	TicketSubtotal  float64 `json:"ticket_subtotal"`
	FoodServiceCost float64 `json:"food_service_cost"`
	Subtotal        float64 `json:"subtotal"`
	TaxAndFees      float64 `json:"tax_and_fees"`
	Total           float64 `json:"total"`
}

// TicketTotals prices a ticket order. The food-service add-on is priced
// per person; the service fee rate comes from configuration.
func TicketTotals(unitPrice float64, quantity int, includeFoodService bool, foodServicePrice, serviceFeeRate float64) TicketBreakdown {
	b := TicketBreakdown{
		TicketSubtotal: unitPrice * float64(quantity),
	}
	if includeFoodService {
		b.FoodServiceCost = foodServicePrice * float64(quantity)
	}
	b.Subtotal = b.TicketSubtotal + b.FoodServiceCost
	b.TaxAndFees = b.Subtotal * serviceFeeRate
	b.Total = b.Subtotal + b.TaxAndFees
	return b
}

// CartLine is one merchandise cart entry as seen by pricing.
type CartLine struct {
	UnitPrice float64
	Quantity  int
}

// Coupon is a flat discount gated on a minimum item subtotal.
type Coupon struct {
	Discount    float64
	MinPurchase float64
}

// MerchBreakdown is the transient pricing result for a merchandise order.
type MerchBreakdown struct {
	ItemSubtotal       float64 `json:"item_subtotal"`
	Discount           float64 `json:"discount"`
	DiscountedSubtotal float64 `json:"discounted_subtotal"`
	ShippingFee        float64 `json:"shipping_fee"`
	Tax                float64 `json:"tax"`
	Total              float64 `json:"total"`
}

// MerchTotals prices a merchandise order. The coupon discount applies to
// the item subtotal only, never to shipping or tax, and only when the
// subtotal meets the coupon's minimum purchase.
func MerchTotals(lines []CartLine, shippingFee float64, coupon *Coupon, taxRate float64) MerchBreakdown {
	var b MerchBreakdown
	for _, line := range lines {
		b.ItemSubtotal += line.UnitPrice * float64(line.Quantity)
	}

	b.DiscountedSubtotal = b.ItemSubtotal
	if coupon != nil && b.ItemSubtotal >= coupon.MinPurchase {
		b.Discount = coupon.Discount
		b.DiscountedSubtotal = b.ItemSubtotal - b.Discount
		if b.DiscountedSubtotal < 0 {
			b.DiscountedSubtotal = 0
		}
	}

	b.ShippingFee = shippingFee
	b.Tax = b.DiscountedSubtotal * taxRate
	b.Total = b.DiscountedSubtotal + b.ShippingFee + b.Tax
	return b
}

// FormatAmount renders a monetary value for display. This is the only
// place amounts are rounded.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
