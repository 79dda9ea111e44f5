package entity

import "time"

// Contact mensaje recibido desde el formulario de contacto.
type Contact struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Message     string
	CreatedAt   time.Time
}
