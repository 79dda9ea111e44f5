package repository

import (
	"context"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact (DIP).
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Contact, int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
