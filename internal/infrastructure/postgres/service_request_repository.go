package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.ServiceRequestRepository = (*ServiceRequestRepo)(nil)

var serviceRequests = table[entity.ServiceRequest]{
	name: "service_requests",
	columns: []string{
		"id", "user_id", "name", "phone_number", "email", "device_type", "computer_types", "brand",
		"custom_brand", "model", "damage", "date", "images", "status", "rejected_reason",
		"technician_name", "technician_phone", "created_at", "updated_at",
	},
	scan: func(row pgx.Row) (*entity.ServiceRequest, error) {
		var s entity.ServiceRequest
		if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.PhoneNumber, &s.Email, &s.DeviceType,
			&s.ComputerTypes, &s.Brand, &s.CustomBrand, &s.Model, &s.Damage, &s.Date, &s.Images,
			&s.Status, &s.RejectedReason, &s.TechnicianName, &s.TechnicianPhone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		return &s, nil
	},
	values: func(s *entity.ServiceRequest) []any {
		return []any{s.ID, s.UserID, s.Name, s.PhoneNumber, s.Email, s.DeviceType, s.ComputerTypes,
			s.Brand, s.CustomBrand, s.Model, s.Damage, s.Date, nonNil(s.Images), s.Status,
			s.RejectedReason, s.TechnicianName, s.TechnicianPhone, s.CreatedAt, s.UpdatedAt}
	},
}

// ServiceRequestRepo implementación del puerto ServiceRequestRepository sobre PostgreSQL (pool o tx).
type ServiceRequestRepo struct {
	q Querier
}

// NewServiceRequestRepository construye el adaptador.
func NewServiceRequestRepository(q Querier) *ServiceRequestRepo {
	return &ServiceRequestRepo{q: q}
}

// Create persiste una nueva solicitud.
func (r *ServiceRequestRepo) Create(ctx context.Context, sr *entity.ServiceRequest) error {
	return serviceRequests.insert(ctx, r.q, sr)
}

// GetByID obtiene una solicitud por ID.
func (r *ServiceRequestRepo) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	return serviceRequests.getByID(ctx, r.q, id)
}

// ListAll colección completa, más recientes primero.
func (r *ServiceRequestRepo) ListAll(ctx context.Context) ([]*entity.ServiceRequest, error) {
	return serviceRequests.list(ctx, r.q, "ORDER BY created_at DESC, id")
}

// ListByUser solicitudes de un cliente, más recientes primero.
func (r *ServiceRequestRepo) ListByUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	return serviceRequests.list(ctx, r.q, "WHERE user_id = $1 ORDER BY created_at DESC, id", userID)
}

// UpdateStatus compare-and-set: solo aplica si el estado sigue siendo u.From.
// Si la fila existe con otro estado devuelve domain.ErrConflict; si no existe, domain.ErrNotFound.
func (r *ServiceRequestRepo) UpdateStatus(ctx context.Context, u repository.StatusUpdate) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE service_requests
		SET status = $3, rejected_reason = $4, technician_name = $5, technician_phone = $6, updated_at = $7
		WHERE id = $1 AND status = $2`,
		u.ID, u.From, u.To, u.RejectedReason, u.TechnicianName, u.TechnicianPhone, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service request status: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	n, err := serviceRequests.count(ctx, r.q, "id = $1", u.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// CountByStatus conteo agrupado por estado.
func (r *ServiceRequestRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM service_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count service requests by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
