package dto

import "time"

// CreateContactRequest formulario público de contacto.
type CreateContactRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone_id"`
	Message      string `json:"message" validate:"required,min=5,max=2000"`
	CaptchaToken string `json:"captcha_token"`
}

// ContactResponse salida de un mensaje de contacto.
type ContactResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactListQuery filtro del buzón.
type ContactListQuery struct {
	PageRequest
	Search string `query:"search"`
}

// ContactListResponse lista paginada de contactos.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RecaptchaRequest token generado en el cliente.
type RecaptchaRequest struct {
	Token string `json:"token"`
}

// RecaptchaResponse resultado de la verificación.
type RecaptchaResponse struct {
	Success bool `json:"success"`
}
