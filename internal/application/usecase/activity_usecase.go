package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// Límites del feed de actividad.
const (
	ActivityDefaultLimit = 10
	ActivityMaxLimit     = 100
)

// ActivityUseCase escribe y lee el feed de actividad reciente del panel.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, log zerolog.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, log: log, now: time.Now}
}

// NewActivity construye una entrada lista para persistir.
func (uc *ActivityUseCase) NewActivity(actorUID, activity, description string) *entity.RecentActivity {
	return &entity.RecentActivity{
		ID:          uuid.New().String(),
		Activity:    activity,
		Description: description,
		ActorUID:    actorUID,
		Timestamp:   uc.now(),
	}
}

// Record agrega una entrada. Un fallo del feed no invalida la operación principal: se registra y se sigue.
func (uc *ActivityUseCase) Record(ctx context.Context, actorUID, activity, description string) {
	if uc == nil {
		return
	}
	a := uc.NewActivity(actorUID, activity, description)
	if err := uc.repo.Append(ctx, a); err != nil {
		uc.log.Error().Err(err).Str("activity", activity).Str("actor", actorUID).Msg("no se pudo registrar la actividad")
	}
}

// Append persiste una entrada ya construida y devuelve el error al llamador.
func (uc *ActivityUseCase) Append(ctx context.Context, a *entity.RecentActivity) error {
	return uc.repo.Append(ctx, a)
}

// List devuelve las últimas entradas, más recientes primero.
func (uc *ActivityUseCase) List(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	if limit <= 0 {
		limit = ActivityDefaultLimit
	}
	if limit > ActivityMaxLimit {
		limit = ActivityMaxLimit
	}
	list, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toActivityResponse(a))
	}
	return out, nil
}

func toActivityResponse(a *entity.RecentActivity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:          a.ID,
		Activity:    a.Activity,
		Description: a.Description,
		ActorUID:    a.ActorUID,
		Timestamp:   a.Timestamp,
	}
}
