package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.User, int, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*entity.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type stubIdentity struct {
	id  *ports.ExternalIdentity
	err error
}

func (s stubIdentity) VerifyIDToken(context.Context, string) (*ports.ExternalIdentity, error) {
	return s.id, s.err
}

var testJWT = JWTConfig{Secret: "test-secret", ExpMinutes: 10, Issuer: "puscom-test"}

func TestRegisterUser_CreaCuentaCredential(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "budi@mail.id").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && u.SignType == entity.SignTypeCredential &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rahasia123")) == nil
	})).Return(nil)

	uc := NewAuthUseCase(repo, nil, testJWT)
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		DisplayName: "Budi", Email: " Budi@Mail.id ", Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, "budi@mail.id", out.User.Email)

	claims, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
	repo.AssertExpectations(t)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "budi@mail.id").Return(&entity.User{ID: "u1"}, nil)

	uc := NewAuthUseCase(repo, nil, testJWT)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{DisplayName: "Budi", Email: "budi@mail.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	user := &entity.User{ID: "u1", Email: "budi@mail.id", Role: entity.RoleTeknisi, PasswordHash: string(hash)}

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "budi@mail.id").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "nadie@mail.id").Return(nil, nil)
	uc := NewAuthUseCase(repo, nil, testJWT)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "budi@mail.id", Password: "rahasia123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTeknisi, claims.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "budi@mail.id", Password: "salah"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@mail.id", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginWithGoogle_PrimerIngresoCreaUsuario(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "siti@gmail.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.SignType == entity.SignTypeGoogle && u.PasswordHash == "" && u.PhotoURL == "https://pic"
	})).Return(nil)

	uc := NewAuthUseCase(repo, stubIdentity{id: &ports.ExternalIdentity{
		Subject: "g-1", Email: "Siti@gmail.com", EmailVerified: true, Name: "Siti", Picture: "https://pic",
	}}, testJWT)

	out, err := uc.LoginWithGoogle(context.Background(), dto.GoogleLoginRequest{IDToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Siti", out.User.DisplayName)
	repo.AssertExpectations(t)
}

func TestLoginWithGoogle_TokenInvalido(t *testing.T) {
	uc := NewAuthUseCase(new(mockUserRepo), stubIdentity{err: errors.New("aud mismatch")}, testJWT)
	_, err := uc.LoginWithGoogle(context.Background(), dto.GoogleLoginRequest{IDToken: "tok"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
