package dto

import "time"

// RegisterRequest alta con email y contraseña (rol user).
type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone_id"`
}

// LoginRequest entrada para login con credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest ID token emitido por Google Sign-In en el cliente.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	SignType    string    `json:"sign_type"`
	PhoneNumber string    `json:"phone_number"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse token de sesión más el perfil.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest cambios del propio perfil (nil = sin cambio).
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone_id"`
}

// ChangePasswordRequest solo para cuentas credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// UpdateRoleRequest cambio de rol desde el panel de usuarios.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user teknisi admin"`
}

// UserListQuery filtro del panel de usuarios.
type UserListQuery struct {
	PageRequest
	Search string `query:"search"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
