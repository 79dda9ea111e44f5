package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// TopN tamaño de los rankings (problemas, marcas, solicitudes recientes).
const TopN = 5

// ServiceSnapshot agregado de la colección de servicios en un instante.
type ServiceSnapshot struct {
	servicerequest.Stats
	GeneratedAt time.Time
	Period      string // etiqueta del mes, p. ej. "Juni 2024"
}

// ServiceStatsUseCase agrega la colección completa de solicitudes. No hay caché: cada llamada relee todo.
type ServiceStatsUseCase struct {
	repo     repository.ServiceRequestRepository
	keywords []string
	now      func() time.Time
}

// NewServiceStatsUseCase construye el caso de uso con el diccionario de daños por defecto.
func NewServiceStatsUseCase(repo repository.ServiceRequestRepository) *ServiceStatsUseCase {
	return &ServiceStatsUseCase{repo: repo, keywords: servicerequest.DamageKeywords, now: time.Now}
}

// Snapshot lee la colección y calcula conteos por estado, problemas frecuentes, marcas y recientes.
func (uc *ServiceStatsUseCase) Snapshot(ctx context.Context) (*ServiceSnapshot, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("estadísticas de servicio: %w", err)
	}
	now := uc.now()
	return &ServiceSnapshot{
		Stats:       servicerequest.Analyze(list, uc.keywords, TopN),
		GeneratedAt: now,
		Period:      monthLabel(now),
	}, nil
}

// Get una solicitud concreta; (nil, nil) si no existe.
func (uc *ServiceStatsUseCase) Get(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	return uc.repo.GetByID(ctx, id)
}
