package repository

import (
	"context"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// ActivityRepository feed de actividad reciente (PostgreSQL o DynamoDB).
type ActivityRepository interface {
	Append(ctx context.Context, a *entity.RecentActivity) error
	ListRecent(ctx context.Context, limit int) ([]*entity.RecentActivity, error)
}
