package address

import (
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		Name:         "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "14 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	if err := validInput().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Line2Optional(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.AddressLine2 = ""
	if err := in.Validate(); err != nil {
		t.Fatalf("address_line2 must be optional: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	t.Parallel()

	in := Input{AddressLine2: "near the park"}
	err := in.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"name", "phone", "address_line1", "city", "state", "pincode"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should name %q: %v", field, err)
		}
	}
}

func TestValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.City = "   "
	err := in.Validate()
	if err == nil || !strings.Contains(err.Error(), "city") {
		t.Fatalf("whitespace-only city should fail: %v", err)
	}
}
