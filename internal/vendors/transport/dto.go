package transport

// CreateVendorRequest adds a vendor to the catalog.
type CreateVendorRequest struct {
	Name  string `json:"name" binding:"required" validate:"max=120"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=32"`
}

// UpdateVendorRequest modifies a vendor. Nil fields are left unchanged.
type UpdateVendorRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone" validate:"omitempty,max=32"`
	Active *bool   `json:"active"`
}
