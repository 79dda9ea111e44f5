package dto

import (
	"io"
	"time"
)

// CreateServiceRequestForm campos del formulario multipart de ingreso.
// Nombre, email y teléfono se completan desde el perfil cuando vienen vacíos.
type CreateServiceRequestForm struct {
	Name          string `form:"name" validate:"omitempty,min=2,max=100"`
	PhoneNumber   string `form:"phone_number" validate:"omitempty,phone_id"`
	Email         string `form:"email" validate:"omitempty,email"`
	DeviceType    string `form:"device_type" validate:"required,oneof=Laptop Komputer"`
	ComputerTypes string `form:"computer_types" validate:"max=100"`
	Brand         string `form:"brand" validate:"max=100"`
	CustomBrand   string `form:"custom_brand" validate:"max=100"`
	Model         string `form:"model" validate:"max=100"`
	Damage        string `form:"damage" validate:"required,min=5,max=2000"`
	Date          string `form:"date" validate:"required,datetime=2006-01-02"`
	CaptchaToken  string `form:"captcha_token"`
}

// FileInput archivo recibido en un multipart; Open se llama solo si pasa las validaciones previas.
type FileInput struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// SubmitServiceRequestInput entrada completa del caso de uso de ingreso.
type SubmitServiceRequestInput struct {
	Form     CreateServiceRequestForm
	Images   []FileInput
	RemoteIP string
}

// UpdateStatusRequest transición de estado desde el panel.
type UpdateStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=pending in_progress completed rejected"`
	RejectedReason string `json:"rejected_reason" validate:"max=500"`
}

// StatusOptionDTO opción del selector de estado.
type StatusOptionDTO struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// ServiceRequestResponse salida de una solicitud de servicio.
type ServiceRequestResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"uid"`
	Name            string            `json:"name"`
	PhoneNumber     string            `json:"phone_number"`
	Email           string            `json:"email"`
	DeviceType      string            `json:"device_type"`
	ComputerTypes   string            `json:"computer_types,omitempty"`
	Brand           string            `json:"brand,omitempty"`
	CustomBrand     string            `json:"custom_brand,omitempty"`
	Model           string            `json:"model,omitempty"`
	Damage          string            `json:"damage"`
	Date            string            `json:"date"`
	Images          []string          `json:"images"`
	Status          string            `json:"status"`
	StatusLabel     string            `json:"status_label"`
	RejectedReason  string            `json:"rejected_reason,omitempty"`
	TechnicianName  string            `json:"technician_name,omitempty"`
	TechnicianPhone string            `json:"technician_phone,omitempty"`
	StatusOptions   []StatusOptionDTO `json:"status_options,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ServiceTab una pestaña del panel (un estado).
type ServiceTab struct {
	Status string                   `json:"status"`
	Label  string                   `json:"label"`
	Count  int                      `json:"count"`
	Items  []ServiceRequestResponse `json:"items"`
}

// ServiceBoardResponse panel de servicios agrupado por estado.
type ServiceBoardResponse struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Tabs   []ServiceTab   `json:"tabs"`
}
