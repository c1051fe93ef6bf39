package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/velura/storefront/internal/address"
	"github.com/velura/storefront/internal/cart"
	"github.com/velura/storefront/internal/catalog"
	"github.com/velura/storefront/internal/order"
	"github.com/velura/storefront/internal/pricing"
)

// stubCatalog resolves products from memory.
type stubCatalog struct {
	items map[string]catalog.Product
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := p
	return &cp, nil
}

type stubAddresses struct {
	saved   map[string]address.Address
	created []address.Address
}

func (s *stubAddresses) Create(ctx context.Context, userID string, in address.Input) (*address.Address, error) {
	a := address.Address{
		ID: uuid.NewString(), UserID: userID, Name: in.Name, Phone: in.Phone,
		AddressLine1: in.AddressLine1, AddressLine2: in.AddressLine2,
		City: in.City, State: in.State, Pincode: in.Pincode, IsDefault: in.IsDefault,
	}
	s.created = append(s.created, a)
	return &a, nil
}

func (s *stubAddresses) GetByID(ctx context.Context, userID, id string) (*address.Address, error) {
	a, ok := s.saved[id]
	if !ok || a.UserID != userID {
		return nil, address.ErrNotFound
	}
	cp := a
	return &cp, nil
}

type stubOrders struct {
	created []*order.Order
}

func (s *stubOrders) Create(ctx context.Context, o *order.Order) error {
	cp := *o
	s.created = append(s.created, &cp)
	return nil
}

func fixture() (*Composer, *stubCatalog, *stubAddresses, *stubOrders, string) {
	cat := &stubCatalog{items: map[string]catalog.Product{
		"px": {ID: "px", Name: "Product X", Price: "200"},
		"py": {ID: "py", Name: "Product Y", Price: "100", OfferPrice: "80"},
	}}
	addrID := uuid.NewString()
	userID := uuid.NewString()
	addrs := &stubAddresses{saved: map[string]address.Address{
		addrID: {ID: addrID, UserID: userID, Name: "Asha Rao", Phone: "9876543210",
			AddressLine1: "14 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
	}}
	orders := &stubOrders{}
	c := &Composer{Catalog: cat, Addresses: addrs, Orders: orders}
	return c, cat, addrs, orders, userID
}

func savedAddressID(addrs *stubAddresses) string {
	for id := range addrs.saved {
		return id
	}
	return ""
}

func twoLineCart(userID string) *cart.Cart {
	return &cart.Cart{UserID: userID, Lines: []cart.Line{
		{ProductID: "px", Quantity: 2},
		{ProductID: "py", Quantity: 1},
	}}
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	t.Parallel()

	c, _, addrs, orders, userID := fixture()
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != order.StatusPlaced {
		t.Fatalf("initial status = %s, want placed", o.Status)
	}
	// subtotal 480 + shipping 50
	if o.TotalAmount != "530.00" {
		t.Fatalf("total_amount = %s, want 530.00", o.TotalAmount)
	}
	if o.PaymentStatus != "pending" {
		t.Fatalf("cod payment status = %s, want pending", o.PaymentStatus)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(o.Items))
	}
	// offer price is snapshotted, not the base price
	if o.Items[1].Price != "80.00" || o.Items[1].ProductName != "Product Y" {
		t.Fatalf("snapshot = %s/%s", o.Items[1].ProductName, o.Items[1].Price)
	}
	if o.Address.City != "Bengaluru" {
		t.Fatalf("address copy missing: %+v", o.Address)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders persisted = %d, want 1", len(orders.created))
	}
}

func TestPlaceOrder_OnlinePaymentSettles(t *testing.T) {
	t.Parallel()

	c, _, addrs, _, userID := fixture()
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "online",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.PaymentStatus != "success" {
		t.Fatalf("online payment status = %s, want success", o.PaymentStatus)
	}
}

func TestPlaceOrder_SkipsUnresolvableLines(t *testing.T) {
	t.Parallel()

	c, cat, addrs, _, userID := fixture()
	delete(cat.items, "py")
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].ProductID != "px" {
		t.Fatalf("items = %+v, want only px", o.Items)
	}
	// 200*2 + 50 shipping
	if o.TotalAmount != "450.00" {
		t.Fatalf("total_amount = %s, want 450.00", o.TotalAmount)
	}
}

func TestPlaceOrder_AllLinesUnresolvable(t *testing.T) {
	t.Parallel()

	c, cat, addrs, orders, userID := fixture()
	cat.items = map[string]catalog.Product{}
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be created")
	}
}

func TestPlaceOrder_NoAddressSelected(t *testing.T) {
	t.Parallel()

	c, _, _, orders, userID := fixture()
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		PaymentMethod: "cod",
	})
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("err = %v, want ErrNoAddress", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("ErrNoAddress must be a validation failure")
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be created")
	}
}

func TestPlaceOrder_UnknownSavedAddress(t *testing.T) {
	t.Parallel()

	c, _, _, orders, userID := fixture()
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     uuid.NewString(),
		PaymentMethod: "cod",
	})
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("err = %v, want ErrNoAddress", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be created")
	}
}

func TestPlaceOrder_NewAddressAutoSelected(t *testing.T) {
	t.Parallel()

	c, _, addrs, _, userID := fixture()
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		NewAddress: &address.Input{
			Name: "Ravi K", Phone: "9000000000", AddressLine1: "2 Hill St",
			City: "Mysuru", State: "Karnataka", Pincode: "570001",
		},
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addrs.created) != 1 {
		t.Fatalf("addresses created = %d, want 1", len(addrs.created))
	}
	if o.Address.City != "Mysuru" {
		t.Fatalf("new address not selected: %+v", o.Address)
	}
}

func TestPlaceOrder_InvalidNewAddress(t *testing.T) {
	t.Parallel()

	c, _, addrs, orders, userID := fixture()
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		NewAddress:    &address.Input{Name: "Ravi K"},
		PaymentMethod: "cod",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if len(addrs.created) != 0 || len(orders.created) != 0 {
		t.Fatal("nothing may be persisted on validation failure")
	}
}

func TestPlaceOrder_InvalidPaymentMethod(t *testing.T) {
	t.Parallel()

	c, _, addrs, orders, userID := fixture()
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "upi",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation failure", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be created")
	}
}

func TestPlaceOrder_CouponFlowsIntoTotal(t *testing.T) {
	t.Parallel()

	c, _, addrs, _, userID := fixture()
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
		CouponCode:    "save10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 480 - 48 + 50 shipping
	if o.TotalAmount != "482.00" {
		t.Fatalf("total_amount = %s, want 482.00", o.TotalAmount)
	}
}

func TestPlaceOrder_InvalidCoupon(t *testing.T) {
	t.Parallel()

	c, _, addrs, orders, userID := fixture()
	_, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
		CouponCode:    "save99",
	})
	if !errors.Is(err, pricing.ErrInvalidCoupon) {
		t.Fatalf("err = %v, want ErrInvalidCoupon", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be created")
	}
}

func TestPlaceOrder_SnapshotSurvivesCatalogMutation(t *testing.T) {
	t.Parallel()

	c, cat, addrs, orders, userID := fixture()
	o, err := c.PlaceOrder(context.Background(), userID, twoLineCart(userID), Input{
		AddressID:     savedAddressID(addrs),
		PaymentMethod: "cod",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// later catalog edits and deletes must not reach the placed order
	px := cat.items["px"]
	px.Name = "Renamed"
	px.Price = "999"
	cat.items["px"] = px
	delete(cat.items, "py")

	persisted := orders.created[0]
	if persisted.Items[0].ProductName != "Product X" || persisted.Items[0].Price != "200.00" {
		t.Fatalf("snapshot changed: %+v", persisted.Items[0])
	}
	if persisted.Items[1].ProductName != "Product Y" || persisted.Items[1].Price != "80.00" {
		t.Fatalf("snapshot changed: %+v", persisted.Items[1])
	}
	if persisted.TotalAmount != o.TotalAmount {
		t.Fatalf("total drifted: %s != %s", persisted.TotalAmount, o.TotalAmount)
	}
}
