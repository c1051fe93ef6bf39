package cart

// Line is a (product, quantity) pairing within a cart. Lines carry no
// price: prices are always resolved live against the catalog, so a stale
// cart cannot diverge from current pricing.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart maps a user to their open lines. Product id is unique within a
// cart; quantities are always >= 1 (the store deletes a line instead of
// persisting a non-positive quantity).
type Cart struct {
	UserID string `json:"user_id"`
	Lines  []Line `json:"items"`
}

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }
