package address

import (
	"errors"
	"strings"
)

type Address struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"is_default"`
}

// Input is the create payload.
// swagger:model AddressInput
type Input struct {
	Name         string `json:"name"          example:"Asha Rao"`
	Phone        string `json:"phone"         example:"9876543210"`
	AddressLine1 string `json:"address_line1" example:"14 MG Road"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"          example:"Bengaluru"`
	State        string `json:"state"         example:"Karnataka"`
	Pincode      string `json:"pincode"       example:"560001"`
	IsDefault    bool   `json:"is_default"`
}

// Validate checks the required fields are present and non-empty.
// AddressLine2 is the only optional field.
func (in Input) Validate() error {
	required := map[string]string{
		"name":          in.Name,
		"phone":         in.Phone,
		"address_line1": in.AddressLine1,
		"city":          in.City,
		"state":         in.State,
		"pincode":       in.Pincode,
	}
	var missing []string
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required fields: " + joinSorted(missing))
	}
	return nil
}

func joinSorted(fields []string) string {
	// stable order for error messages regardless of map iteration
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j] < fields[j-1]; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
	return strings.Join(fields, ", ")
}
