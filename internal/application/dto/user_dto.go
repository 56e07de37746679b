package dto

// CreateUserRequest alta de cuenta (solo ADMIN). La credencial la custodia
// el remote store; el hub solo la reenvía.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF"`
}

// UpdateUserRequest actualización parcial de una cuenta (solo ADMIN).
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN STAFF"`
}

// UserListResponse listado de cuentas.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
