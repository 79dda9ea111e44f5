package entity

import "time"

// RecentActivity entrada del feed de actividad del panel.
type RecentActivity struct {
	ID          string
	Activity    string
	Description string
	ActorUID    string
	Timestamp   time.Time
}
