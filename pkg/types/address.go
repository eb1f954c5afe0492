package types

// ShippingAddress holds the free-form delivery fields captured at checkout.
// None of the fields are validated beyond the checkout coordinator's
// non-empty-address gate.
type ShippingAddress struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	Phone       string `json:"phone,omitempty"`
}
