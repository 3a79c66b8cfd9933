// Package model defines domain types shared by the product and stock services.
package model

// Product is the persisted representation of a product row.
// ID is zero until the store assigns one. Nil text fields are NULL columns.
type Product struct {
	ID          int64
	Name        *string
	Description *string
	ImageURL    *string
}

// ProductDTO is the wire representation of a product.
// A nil ID means the product has not been persisted yet. Nil text fields are
// absent on input and encoded as null on output.
type ProductDTO struct {
	ID          *int64  `json:"id,omitempty"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageURL"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Deref returns *s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
