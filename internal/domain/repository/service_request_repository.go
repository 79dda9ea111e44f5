package repository

import (
	"context"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// StatusUpdate cambio de estado con compare-and-set sobre el estado previo.
type StatusUpdate struct {
	ID              string
	From            string
	To              string
	RejectedReason  string
	TechnicianName  string
	TechnicianPhone string
	UpdatedAt       time.Time
}

// ServiceRequestRepository define el puerto de persistencia para ServiceRequest (DIP).
type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *entity.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error)
	// ListAll devuelve la colección completa ordenada por created_at desc.
	ListAll(ctx context.Context) ([]*entity.ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error)
	// UpdateStatus solo aplica si el estado actual sigue siendo u.From; si no, devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, u StatusUpdate) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}
