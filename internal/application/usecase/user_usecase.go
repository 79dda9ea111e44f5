package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/auth"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// AvatarPrefix prefijo de las fotos de perfil: "profileImages/{uid}".
const AvatarPrefix = "profileImages/"

// Tamaño máximo de avatar.
const maxAvatarBytes = 5 << 20

// UserUseCase perfil propio (settings) y panel de usuarios (admin).
type UserUseCase struct {
	repo       repository.UserRepository
	storage    ports.ObjectStorage
	activities *ActivityUseCase
	log        zerolog.Logger
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, storage ports.ObjectStorage, activities *ActivityUseCase, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, storage: storage, activities: activities, log: log, now: time.Now}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile cambia nombre y teléfono del propio perfil.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// ChangePassword solo aplica a cuentas credential; exige la contraseña actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, uid string, in dto.ChangePasswordRequest) error {
	u, err := uc.load(ctx, uid)
	if err != nil {
		return err
	}
	if u.SignType != entity.SignTypeCredential || u.PasswordHash == "" {
		return fmt.Errorf("%w: la cuenta usa inicio de sesión con Google", domain.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, u)
}

// UploadAvatar reemplaza la foto de perfil en "profileImages/{uid}".
func (uc *UserUseCase) UploadAvatar(ctx context.Context, uid string, f dto.FileInput) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	obj, err := putImage(ctx, uc.storage, AvatarPrefix+uid, f, maxAvatarBytes)
	if err != nil {
		return nil, err
	}
	// la clave es fija por usuario; el sufijo evita que el navegador muestre la versión en caché
	u.PhotoURL = fmt.Sprintf("%s?v=%d", obj.URL, uc.now().Unix())
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// List panel de usuarios con búsqueda por nombre o email.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) (*dto.UserListResponse, error) {
	q.Normalize(20, 100)
	list, total, err := uc.repo.List(ctx, strings.TrimSpace(q.Search), q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.NewPageResponse(q.PageRequest, total)}, nil
}

// UpdateRole cambia el rol de otra cuenta. Un admin no puede quitarse su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorUID, id, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	if actorUID == id && role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: no puedes cambiar tu propio rol", domain.ErrForbidden)
	}
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	u.Role = role
	uc.activities.Record(ctx, actorUID, "Role diubah", fmt.Sprintf("Role %s diubah menjadi %s", u.Email, role))
	return auth.ToUserResponse(u), nil
}

// Delete elimina una cuenta. No se permite borrar la propia.
func (uc *UserUseCase) Delete(ctx context.Context, actorUID, id string) error {
	if actorUID == id {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta", domain.ErrForbidden)
	}
	u, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, AvatarPrefix+id); err != nil {
		uc.log.Debug().Err(err).Str("uid", id).Msg("sin avatar que eliminar")
	}
	uc.activities.Record(ctx, actorUID, "Pengguna dihapus", fmt.Sprintf("Akun %s dihapus", u.Email))
	return nil
}
