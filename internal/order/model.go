package order

import (
	"fmt"
	"time"

	"github.com/velura/storefront/internal/address"
)

// Status is one value from the order lifecycle enumeration.
type Status string

const (
	StatusPlaced     Status = "placed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// rank orders the forward lifecycle. Cancelled sits outside the sequence.
var rank = map[Status]int{
	StatusPlaced:     0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo enforces the forward-only lifecycle: a transition must
// move strictly forward (skips allowed), or cancel a non-terminal order.
// Terminal states are frozen.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return rank[next] > rank[s]
}

// Payment methods. Captured as metadata only; no gateway integration here.
const (
	PaymentOnline = "online"
	PaymentCOD    = "cod"
)

func ParsePaymentMethod(m string) (string, error) {
	switch m {
	case PaymentOnline, PaymentCOD:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", m)
}

// Item is a frozen snapshot of a cart line at placement time. Name and
// price never change even if the underlying product is later edited or
// deleted.
type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"` // NUMERIC -> string
}

// Order is immutable after creation except for Status (and the payment
// status that tracks it). The address is an embedded copy, not a
// reference to the user's saved address.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         []Item          `json:"items"`
	Address       address.Address `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   string          `json:"total_amount"` // NUMERIC -> string
	Status        Status          `json:"order_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
