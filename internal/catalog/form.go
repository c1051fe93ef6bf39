package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrImagesRequired = errors.New("at least one image is required")
)

// Parse validates the form and builds a Product (without ID/timestamps,
// the repo fills those in). Prices are normalized through decimal so
// "899", "899.0" and "899.00" all round-trip the same way.
func (f ProductForm) Parse() (*Product, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !ValidCategory(f.Category) {
		return nil, fmt.Errorf("unknown category %q", f.Category)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if price.IsNegative() {
		return nil, errors.New("price must be non-negative")
	}

	offer := strings.TrimSpace(f.OfferPrice)
	if offer != "" {
		op, err := decimal.NewFromString(offer)
		if err != nil {
			return nil, fmt.Errorf("offer_price: %w", err)
		}
		if op.IsNegative() {
			return nil, errors.New("offer_price must be non-negative")
		}
		if op.GreaterThan(price) {
			return nil, errors.New("offer_price must not exceed price")
		}
		offer = op.StringFixed(2)
	}

	var images []string
	for _, img := range strings.Split(f.Images, ",") {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return nil, ErrImagesRequired
	}

	inStock := true
	if f.InStock != nil {
		inStock = *f.InStock
	}

	return &Product{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price.StringFixed(2),
		OfferPrice:  offer,
		Category:    f.Category,
		Concern:     strings.TrimSpace(f.Concern),
		Images:      images,
		Rating:      f.Rating,
		ReviewCount: f.ReviewCount,
		Ingredients: strings.TrimSpace(f.Ingredients),
		HowToUse:    strings.TrimSpace(f.HowToUse),
		InStock:     inStock,
	}, nil
}
