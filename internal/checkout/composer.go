// Package checkout turns a priced cart into an immutable order.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/velura/storefront/internal/address"
	"github.com/velura/storefront/internal/cart"
	"github.com/velura/storefront/internal/catalog"
	"github.com/velura/storefront/internal/order"
	"github.com/velura/storefront/internal/pricing"
)

// ErrValidation marks failures the caller must fix before retrying;
// nothing is persisted when one is returned.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyCart = fmt.Errorf("%w: cart has no resolvable lines", ErrValidation)
	ErrNoAddress = fmt.Errorf("%w: no delivery address selected", ErrValidation)
)

type Catalog interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
}

type Addresses interface {
	Create(ctx context.Context, userID string, in address.Input) (*address.Address, error)
	GetByID(ctx context.Context, userID, id string) (*address.Address, error)
}

type Orders interface {
	Create(ctx context.Context, o *order.Order) error
}

type Composer struct {
	Catalog   Catalog
	Addresses Addresses
	Orders    Orders
}

// Input selects the address and payment method for one checkout attempt.
// NewAddress, when present, is created and auto-selected; otherwise
// AddressID must name one of the user's saved addresses.
type Input struct {
	AddressID     string         `json:"address_id"`
	NewAddress    *address.Input `json:"new_address,omitempty"`
	PaymentMethod string         `json:"payment_method"`
	CouponCode    string         `json:"coupon_code,omitempty"`
}

// PlaceOrder composes an order from the live cart. Each line is resolved
// against the current catalog; lines whose product no longer exists are
// skipped. Pricing is computed exactly once and frozen into the order
// along with per-item name/price snapshots. The caller clears the cart
// after a successful placement; PlaceOrder never touches it.
func (c *Composer) PlaceOrder(ctx context.Context, userID string, crt *cart.Cart, in Input) (*order.Order, error) {
	var lines []pricing.Line
	var items []order.Item
	for _, l := range crt.Lines {
		p, err := c.Catalog.GetByID(ctx, l.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", l.ProductID, err)
		}
		lines = append(lines, pricing.Line{Product: *p, Quantity: l.Quantity})
		items = append(items, order.Item{
			ID:          uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			Price:       pricing.EffectivePrice(*p).StringFixed(2),
		})
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	addr, err := c.selectAddress(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	method, err := order.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	summary, err := pricing.Quote(lines, in.CouponCode)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         items,
		Address:       *addr,
		PaymentMethod: method,
		PaymentStatus: paymentStatusFor(method),
		TotalAmount:   summary.Total.StringFixed(2),
		Status:        order.StatusPlaced,
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if err := c.Orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (c *Composer) selectAddress(ctx context.Context, userID string, in Input) (*address.Address, error) {
	if in.NewAddress != nil {
		if err := in.NewAddress.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		// a newly created address is auto-selected
		return c.Addresses.Create(ctx, userID, *in.NewAddress)
	}
	if in.AddressID == "" {
		return nil, ErrNoAddress
	}
	a, err := c.Addresses.GetByID(ctx, userID, in.AddressID)
	if errors.Is(err, address.ErrNotFound) {
		return nil, ErrNoAddress
	}
	return a, err
}

func paymentStatusFor(method string) string {
	if method == order.PaymentOnline {
		return "success" // mock gateway: online payments settle immediately
	}
	return "pending"
}
