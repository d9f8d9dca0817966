package userreq

// UpdateUserRequest represents the request to update a user. Username is
// immutable and has no field here.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Role      *string `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
