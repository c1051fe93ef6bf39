package catalog

import "time"

// Categories a product may belong to.
const (
	CategorySkincare = "skincare"
	CategoryHaircare = "haircare"
	CategoryBodycare = "bodycare"
)

func ValidCategory(c string) bool {
	switch c {
	case CategorySkincare, CategoryHaircare, CategoryBodycare:
		return true
	}
	return false
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store prices as strings to avoid rounding errors (NUMERIC in Postgres)
	Price       string    `json:"price"`
	OfferPrice  string    `json:"offer_price,omitempty"`
	Category    string    `json:"category"`
	Concern     string    `json:"concern,omitempty"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Ingredients string    `json:"ingredients,omitempty"`
	HowToUse    string    `json:"how_to_use,omitempty"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse represents the filtered response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// category filter applied
	Category string `json:"category,omitempty"`
	// concern filter applied
	Concern string `json:"concern,omitempty"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	Items   []Product `json:"items"`
}

// ProductForm is the admin create/update payload. Images come in as a
// comma-delimited list and are split into an ordered sequence.
// swagger:model ProductForm
type ProductForm struct {
	Name        string `json:"name"        example:"Vitamin C Brightening Serum"`
	Description string `json:"description" example:"20% Vitamin C serum"`
	Price       string `json:"price"       example:"899"`
	OfferPrice  string `json:"offer_price" example:"699"`
	Category    string `json:"category"    example:"skincare"`
	Concern     string `json:"concern"     example:"dark_spots"`
	Images      string `json:"images"      example:"https://cdn.example.com/serum.jpg"`
	Rating      float64 `json:"rating"`
	ReviewCount int    `json:"review_count"`
	Ingredients string `json:"ingredients"`
	HowToUse    string `json:"how_to_use"`
	InStock     *bool  `json:"in_stock"`
}
