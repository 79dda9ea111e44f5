package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

func newUserUC(users *memUsers, st *memStorage) *UserUseCase {
	return NewUserUseCase(users, st, NewActivityUseCase(&memActivities{}, zerolog.Nop()), zerolog.Nop())
}

func TestUserDelete_NoPuedeBorrarseASiMismo(t *testing.T) {
	users := newMemUsers(&entity.User{ID: "admin-1", Role: entity.RoleAdmin}, &entity.User{ID: "u2", Role: entity.RoleUser})
	uc := newUserUC(users, newMemStorage())

	assert.ErrorIs(t, uc.Delete(context.Background(), "admin-1", "admin-1"), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), "admin-1", "u2"))
	n, _ := users.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestUserUpdateRole(t *testing.T) {
	users := newMemUsers(&entity.User{ID: "admin-1", Role: entity.RoleAdmin}, &entity.User{ID: "u2", Email: "u2@mail.id", Role: entity.RoleUser})
	uc := newUserUC(users, newMemStorage())
	ctx := context.Background()

	out, err := uc.UpdateRole(ctx, "admin-1", "u2", entity.RoleTeknisi)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTeknisi, out.Role)

	_, err = uc.UpdateRole(ctx, "admin-1", "u2", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateRole(ctx, "admin-1", "admin-1", entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("lama12345"), bcrypt.MinCost)
	users := newMemUsers(
		&entity.User{ID: "u1", SignType: entity.SignTypeCredential, PasswordHash: string(hash)},
		&entity.User{ID: "g1", SignType: entity.SignTypeGoogle},
	)
	uc := newUserUC(users, newMemStorage())
	ctx := context.Background()

	assert.ErrorIs(t, uc.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "salah", NewPassword: "baru12345"}), domain.ErrUnauthorized)
	require.NoError(t, uc.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "lama12345", NewPassword: "baru12345"}))
	u, _ := users.GetByID(ctx, "u1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("baru12345")))

	assert.ErrorIs(t, uc.ChangePassword(ctx, "g1", dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "baru12345"}), domain.ErrForbidden)
}

func TestUploadAvatar_ClaveFijaPorUsuario(t *testing.T) {
	users := newMemUsers(&entity.User{ID: "u1"})
	st := newMemStorage()
	uc := newUserUC(users, st)

	out, err := uc.UploadAvatar(context.Background(), "u1", imageFile("me.png"))
	require.NoError(t, err)
	assert.Contains(t, out.PhotoURL, "/uploads/profileImages/u1?v=")
	_, err = uc.UploadAvatar(context.Background(), "u1", imageFile("me2.png"))
	require.NoError(t, err)
	assert.Equal(t, 1, st.count())
}
