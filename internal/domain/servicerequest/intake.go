package servicerequest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// Límites del formulario de ingreso.
const (
	MaxImages     = 5
	MaxImageBytes = 20 << 20
)

// KeyPrefix prefijo de las fotos de daños en el almacenamiento de objetos.
const KeyPrefix = "service-requests/"

// Longitud máxima del nombre sanitizado y de la extensión que se conserva al recortarlo.
const (
	maxFilename = 100
	maxExt      = 16
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// phoneID acepta 08…, 628… y +628… con 8 a 13 dígitos tras el prefijo del operador.
var phoneID = regexp.MustCompile(`^(\+62|62|0)8[0-9]{7,12}$`)

// ValidPhone indica si s es un número móvil indonesio.
func ValidPhone(s string) bool {
	return phoneID.MatchString(s)
}

// CheckImageCount rechaza más de MaxImages fotos. Se llama antes de subir nada.
func CheckImageCount(n int) error {
	if n > MaxImages {
		return domain.ErrTooManyImages
	}
	return nil
}

// CheckImage valida tamaño y tipo de una foto. contentType es el detectado a partir del contenido.
func CheckImage(size int64, contentType string) error {
	if size > MaxImageBytes {
		return domain.ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ErrUnsupportedMedia
	}
	return nil
}

// ObjectKey construye "service-requests/{timestamp}-{filename}" con timestamp en milisegundos.
func ObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s%d-%s", KeyPrefix, now.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename deja solo el nombre base con caracteres seguros para una ruta.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "image"
	}
	if len(name) > maxFilename {
		ext := filepath.Ext(name)
		if len(ext) > maxExt {
			ext = ""
		}
		name = strings.TrimRight(name[:maxFilename-len(ext)], "._") + ext
	}
	return name
}

// ValidateDevice aplica los campos condicionales del tipo de dispositivo.
// Laptop exige marca (o customBrand si la marca es "Lainnya") y modelo; Komputer exige computerTypes.
func ValidateDevice(sr *entity.ServiceRequest) error {
	switch sr.DeviceType {
	case entity.DeviceLaptop:
		if strings.TrimSpace(sr.Brand) == "" {
			return fmt.Errorf("%w: brand es obligatorio para Laptop", domain.ErrInvalidInput)
		}
		if sr.Brand == entity.BrandOther && strings.TrimSpace(sr.CustomBrand) == "" {
			return fmt.Errorf("%w: customBrand es obligatorio cuando brand es %s", domain.ErrInvalidInput, entity.BrandOther)
		}
		if strings.TrimSpace(sr.Model) == "" {
			return fmt.Errorf("%w: model es obligatorio para Laptop", domain.ErrInvalidInput)
		}
	case entity.DeviceKomputer:
		if strings.TrimSpace(sr.ComputerTypes) == "" {
			return fmt.Errorf("%w: computerTypes es obligatorio para Komputer", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: deviceType desconocido %q", domain.ErrInvalidInput, sr.DeviceType)
	}
	if _, err := time.Parse("2006-01-02", sr.Date); err != nil {
		return fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}
