package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
)

func TestValidate_ReportaCamposPorNombreJSON(t *testing.T) {
	fields := Validate(dto.CreateContactRequest{
		Name:        "A",
		Email:       "no-es-email",
		PhoneNumber: "0812",
		Message:     "Halo, saya ingin bertanya",
	})

	assert.Equal(t, map[string]string{
		"name":         "min",
		"email":        "email",
		"phone_number": "phone_id",
	}, fields)
}

func TestValidate_FormularioDeIngreso(t *testing.T) {
	ok := dto.CreateServiceRequestForm{
		DeviceType: "Komputer",
		Damage:     "Tidak bisa menyala",
		Date:       "2024-06-10",
	}
	assert.Nil(t, Validate(ok))

	bad := ok
	bad.DeviceType = "Tablet"
	assert.Equal(t, "oneof", Validate(bad)["device_type"])
}
