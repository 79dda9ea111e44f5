package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

var activities = table[entity.RecentActivity]{
	name:    "recent_activities",
	columns: []string{"id", "activity", "description", "actor_uid", "occurred_at"},
	scan: func(row pgx.Row) (*entity.RecentActivity, error) {
		var a entity.RecentActivity
		if err := row.Scan(&a.ID, &a.Activity, &a.Description, &a.ActorUID, &a.Timestamp); err != nil {
			return nil, err
		}
		return &a, nil
	},
	values: func(a *entity.RecentActivity) []any {
		return []any{a.ID, a.Activity, a.Description, a.ActorUID, a.Timestamp}
	},
}

// ActivityRepo feed de actividad reciente en PostgreSQL (pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

func (r *ActivityRepo) Append(ctx context.Context, a *entity.RecentActivity) error {
	return activities.insert(ctx, r.q, a)
}

// ListRecent últimas entradas por timestamp descendente.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.RecentActivity, error) {
	return activities.list(ctx, r.q, "ORDER BY occurred_at DESC LIMIT $1", limit)
}
