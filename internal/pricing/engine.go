// Package pricing derives a priced summary from cart lines and the live
// catalog. It is pure given catalog state: no side effects, no storage.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velura/storefront/internal/catalog"
)

var (
	// Orders above this subtotal ship free, everything else pays a flat fee.
	freeShippingAbove = decimal.NewFromInt(500)
	flatShippingFee   = decimal.NewFromInt(50)

	ErrInvalidCoupon = errors.New("invalid coupon code")
)

// coupons maps a normalized code to a fractional discount on the subtotal.
// The discount is authoritative: once applied it flows into Total and is
// frozen into the order at checkout.
var coupons = map[string]decimal.Decimal{
	"save10": decimal.NewFromFloat(0.10),
}

// Line pairs a resolved product with the quantity held in the cart.
type Line struct {
	Product  catalog.Product
	Quantity int
}

type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
	LineCount   int             `json:"line_count"`
	CouponCode  string          `json:"coupon_code,omitempty"`
}

// EffectivePrice is the offer price when present, else the base price.
func EffectivePrice(p catalog.Product) decimal.Decimal {
	raw := p.OfferPrice
	if raw == "" {
		raw = p.Price
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Quote computes the priced summary for the given lines. Lines whose
// product could not be resolved never reach here (callers skip them), so
// an empty slice degrades to a zero-total summary, not an error. A coupon
// code must be known or empty; an unknown code is rejected up front so a
// discount is never reported applied and then lost.
func Quote(lines []Line, couponCode string) (Summary, error) {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		subtotal = subtotal.Add(EffectivePrice(l.Product).Mul(decimal.NewFromInt(int64(l.Quantity))))
		count++
	}

	discount := decimal.Zero
	code := strings.ToLower(strings.TrimSpace(couponCode))
	if code != "" {
		rate, ok := coupons[code]
		if !ok {
			return Summary{}, ErrInvalidCoupon
		}
		discount = subtotal.Mul(rate).Round(2)
	}

	if count == 0 {
		// empty cart: nothing to ship, nothing to charge
		return Summary{Subtotal: decimal.Zero, Discount: decimal.Zero,
			ShippingFee: decimal.Zero, Total: decimal.Zero, CouponCode: code}, nil
	}

	shipping := flatShippingFee
	if subtotal.GreaterThan(freeShippingAbove) {
		shipping = decimal.Zero
	}

	return Summary{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: shipping,
		Total:       subtotal.Sub(discount).Add(shipping),
		LineCount:   count,
		CouponCode:  code,
	}, nil
}
