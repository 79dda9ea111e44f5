package repository

import (
	"context"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	// List filtra por nombre o email (search vacío = todos) y devuelve también el total.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.User, int, error)
	Count(ctx context.Context) (int, error)
}
