package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

var contacts = table[entity.Contact]{
	name:    "contacts",
	columns: []string{"id", "name", "email", "phone_number", "message", "created_at"},
	scan: func(row pgx.Row) (*entity.Contact, error) {
		var c entity.Contact
		if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		return &c, nil
	},
	values: func(c *entity.Contact) []any {
		return []any{c.ID, c.Name, c.Email, c.PhoneNumber, c.Message, c.CreatedAt}
	},
}

// ContactRepo mensajes del formulario de contacto.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	return contacts.insert(ctx, r.q, c)
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	return contacts.getByID(ctx, r.q, id)
}

// List busca en nombre, email y mensaje.
func (r *ContactRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Contact, int, error) {
	var w where
	w.add("TRUE")
	if search != "" {
		pat := likePattern(search)
		w.add("(name ILIKE ? OR email ILIKE ? OR message ILIKE ?)", pat, pat, pat)
	}
	total, err := contacts.count(ctx, r.q, w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	tail := fmt.Sprintf("WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", w.sql(), len(w.args)+1, len(w.args)+2)
	list, err := contacts.list(ctx, r.q, tail, append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	return contacts.deleteByID(ctx, r.q, id)
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	return contacts.count(ctx, r.q, "")
}
