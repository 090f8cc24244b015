package order

import (
	"strings"

	"github.com/clearmart/oms/order/internal/service/errs"
)

// Address is a structured postal address attached to an order. The fields
// are snapshots; later profile edits do not affect stored orders.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// IsZero reports whether no field of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Validate checks the required sub-fields and names every missing one.
func (a Address) Validate() error {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"line1", a.Line1},
		{"city", a.City},
		{"region", a.Region},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return errs.New(
			errs.CodeInvalidAddress,
			"address is missing required fields: %s",
			strings.Join(missing, ", "),
		)
	}

	return nil
}
