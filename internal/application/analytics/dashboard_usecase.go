// Package analytics contiene los casos de uso de lectura del panel:
// el resumen de contadores y las estadísticas de servicio usadas como contexto del asistente.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

const dashboardRecentActivities = 5 // entradas del feed en el widget del resumen

// DashboardUseCase genera el resumen del panel principal.
//
// Fuente de datos: los repositorios de cada colección (consultas de conteo read-only).
type DashboardUseCase struct {
	users      repository.UserRepository
	products   repository.ProductRepository
	contacts   repository.ContactRepository
	services   repository.ServiceRequestRepository
	activities repository.ActivityRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	users repository.UserRepository,
	products repository.ProductRepository,
	contacts repository.ContactRepository,
	services repository.ServiceRequestRepository,
	activities repository.ActivityRepository,
) *DashboardUseCase {
	return &DashboardUseCase{users: users, products: products, contacts: contacts, services: services, activities: activities}
}

// GetSummary construye el DashboardSummaryResponse.
//
// Cinco llamadas en paralelo:
//  1. users.Count
//  2. products.Count
//  3. contacts.Count
//  4. services.CountByStatus
//  5. activities.ListRecent(5)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	type countResult struct {
		n   int
		err error
	}
	type statusResult struct {
		byStatus map[string]int
		err      error
	}
	type activityResult struct {
		list []*entity.RecentActivity
		err  error
	}

	usersCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	contactsCh := make(chan countResult, 1)
	statusCh := make(chan statusResult, 1)
	actCh := make(chan activityResult, 1)

	go func() {
		n, err := uc.users.Count(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.products.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.contacts.Count(ctx)
		contactsCh <- countResult{n, err}
	}()
	go func() {
		m, err := uc.services.CountByStatus(ctx)
		statusCh <- statusResult{m, err}
	}()
	go func() {
		l, err := uc.activities.ListRecent(ctx, dashboardRecentActivities)
		actCh <- activityResult{l, err}
	}()

	users := <-usersCh
	products := <-productsCh
	contacts := <-contactsCh
	status := <-statusCh
	acts := <-actCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", users.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if contacts.err != nil {
		return nil, fmt.Errorf("dashboard: contactos: %w", contacts.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: servicios por estado: %w", status.err)
	}
	if acts.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", acts.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	byStatus := make(map[string]int, len(servicerequest.Statuses))
	total := 0
	for _, s := range servicerequest.Statuses {
		byStatus[s] = status.byStatus[s]
		total += status.byStatus[s]
	}
	recent := make([]dto.ActivityResponse, 0, len(acts.list))
	for _, a := range acts.list {
		recent = append(recent, dto.ActivityResponse{
			ID:          a.ID,
			Activity:    a.Activity,
			Description: a.Description,
			ActorUID:    a.ActorUID,
			Timestamp:   a.Timestamp,
		})
	}
	return &dto.DashboardSummaryResponse{
		Users:            users.n,
		Products:         products.n,
		Contacts:         contacts.n,
		ServiceRequests:  total,
		ServicesByStatus: byStatus,
		RecentActivities: recent,
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes en indonesio, ej: "Februari 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
