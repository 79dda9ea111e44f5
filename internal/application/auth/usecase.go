package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login con credenciales y Google Sign-In.
type AuthUseCase struct {
	userRepo repository.UserRepository
	identity ports.IdentityVerifier
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. identity puede ser nil si Google Sign-In no está configurado.
func NewAuthUseCase(userRepo repository.UserRepository, identity ports.IdentityVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, identity: identity, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea una cuenta credential con rol user. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Email:        email,
		Role:         entity.RoleUser,
		SignType:     entity.SignTypeCredential,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

// LoginWithGoogle valida el ID token y crea la cuenta (signType google) en el primer inicio de sesión.
func (uc *AuthUseCase) LoginWithGoogle(ctx context.Context, in dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if uc.identity == nil {
		return nil, fmt.Errorf("%w: google sign-in no configurado", domain.ErrForbidden)
	}
	id, err := uc.identity.VerifyIDToken(ctx, in.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !id.EmailVerified || id.Email == "" {
		return nil, fmt.Errorf("%w: email de google no verificado", domain.ErrUnauthorized)
	}

	email := normalizeEmail(id.Email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		now := uc.now()
		name := id.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = &entity.User{
			ID:          uuid.New().String(),
			DisplayName: name,
			Email:       email,
			Role:        entity.RoleUser,
			SignType:    entity.SignTypeGoogle,
			PhotoURL:    id.Picture,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return uc.session(user)
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// ToUserResponse mapea la entidad al DTO público (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		SignType:    u.SignType,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
