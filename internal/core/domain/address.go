package domain

import "strings"

// Address is a user profile address, owned by the backend.
type Address struct {
	AddressID  string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Primary    bool
}

// RequiredFieldsFilled reports whether every field the checkout form requires
// is non-blank.
func (a Address) RequiredFieldsFilled() bool {
	for _, f := range []string{a.Line1, a.City, a.State, a.PostalCode} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// DisplayString flattens an address to the single line shown on orders.
func (a Address) DisplayString() string {
	if a.Line1 == "" {
		return "-"
	}
	return a.Line1 + ", " + a.City + ", " + a.State + " " + a.PostalCode
}
