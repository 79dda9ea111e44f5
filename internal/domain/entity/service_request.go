package entity

import "time"

// Tipos de dispositivo aceptados en el formulario de servicio.
const (
	DeviceLaptop   = "Laptop"
	DeviceKomputer = "Komputer"
)

// BrandOther marca "otra"; obliga a informar CustomBrand.
const BrandOther = "Lainnya"

// ServiceRequest ticket de reparación enviado por un cliente.
// Status sigue el ciclo definido en domain/servicerequest.
type ServiceRequest struct {
	ID              string
	UserID          string
	Name            string
	PhoneNumber     string
	Email           string
	DeviceType      string
	ComputerTypes   string
	Brand           string
	CustomBrand     string
	Model           string
	Damage          string
	Date            string // YYYY-MM-DD tal como lo envió el cliente
	Images          []string
	Status          string
	RejectedReason  string
	TechnicianName  string
	TechnicianPhone string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BrandLabel devuelve la marca visible: CustomBrand cuando Brand es "Lainnya".
func (s *ServiceRequest) BrandLabel() string {
	if s.Brand == BrandOther && s.CustomBrand != "" {
		return s.CustomBrand
	}
	return s.Brand
}
