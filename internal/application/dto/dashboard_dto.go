package dto

import "time"

// ActivityResponse entrada del feed de actividad.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Activity    string    `json:"activity"`
	Description string    `json:"description"`
	ActorUID    string    `json:"actor_uid,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// DashboardSummaryResponse contadores del panel principal.
type DashboardSummaryResponse struct {
	Users            int                `json:"users"`
	Products         int                `json:"products"`
	Contacts         int                `json:"contacts"`
	ServiceRequests  int                `json:"service_requests"`
	ServicesByStatus map[string]int     `json:"services_by_status"`
	RecentActivities []ActivityResponse `json:"recent_activities"`
}
