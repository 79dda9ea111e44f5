package ports

import (
	"context"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una solicitud de servicio.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sr *entity.ServiceRequest) ([]byte, error)
}
