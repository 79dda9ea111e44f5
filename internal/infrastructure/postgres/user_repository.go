package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var users = table[entity.User]{
	name: "users",
	columns: []string{
		"id", "display_name", "email", "role", "sign_type", "phone_number", "photo_url",
		"password_hash", "created_at", "updated_at",
	},
	scan: func(row pgx.Row) (*entity.User, error) {
		var u entity.User
		if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &u.Role, &u.SignType, &u.PhoneNumber,
			&u.PhotoURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		return &u, nil
	},
	values: func(u *entity.User) []any {
		return []any{u.ID, u.DisplayName, u.Email, u.Role, u.SignType, u.PhoneNumber, u.PhotoURL,
			u.PasswordHash, u.CreatedAt, u.UpdatedAt}
	},
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado ⇒ domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return users.insert(ctx, r.q, u)
}

// GetByID obtiene un usuario por uid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return users.getByID(ctx, r.q, id)
}

// GetByEmail obtiene un usuario por email (comparación sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return users.get(ctx, r.q, "lower(email) = lower($1)", email)
}

// Update actualiza perfil y credenciales. El rol se cambia con UpdateRole.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET display_name = $2, phone_number = $3, photo_url = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`,
		u.ID, u.DisplayName, u.PhoneNumber, u.PhotoURL, u.PasswordHash, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateRole cambia el rol del usuario.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un usuario.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return users.deleteByID(ctx, r.q, id)
}

// List filtra por nombre o email y pagina por fecha de alta descendente.
func (r *UserRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.User, int, error) {
	var w where
	w.add("TRUE")
	if search != "" {
		pat := likePattern(search)
		w.add("(display_name ILIKE ? OR email ILIKE ?)", pat, pat)
	}
	total, err := users.count(ctx, r.q, w.sql(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	tail := fmt.Sprintf("WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", w.sql(), len(w.args)+1, len(w.args)+2)
	list, err := users.list(ctx, r.q, tail, append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Count total de usuarios.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	return users.count(ctx, r.q, "")
}
