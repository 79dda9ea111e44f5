package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// ContactUseCase formulario público de contacto y buzón del panel.
type ContactUseCase struct {
	repo       repository.ContactRepository
	captcha    ports.CaptchaVerifier
	activities *ActivityUseCase
	now        func() time.Time
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, captcha ports.CaptchaVerifier, activities *ActivityUseCase) *ContactUseCase {
	return &ContactUseCase{repo: repo, captcha: captcha, activities: activities, now: time.Now}
}

// Submit guarda un mensaje tras verificar el CAPTCHA.
func (uc *ContactUseCase) Submit(ctx context.Context, in dto.CreateContactRequest, remoteIP string) (*dto.ContactResponse, error) {
	if err := verifyCaptcha(ctx, uc.captcha, in.CaptchaToken, remoteIP); err != nil {
		return nil, err
	}
	c := &entity.Contact{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Message:     strings.TrimSpace(in.Message),
		CreatedAt:   uc.now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.activities.Record(ctx, "", "Pesan baru", fmt.Sprintf("Pesan kontak dari %s", c.Name))
	out := toContactResponse(c)
	return &out, nil
}

// List buzón con búsqueda por nombre, email o mensaje.
func (uc *ContactUseCase) List(ctx context.Context, q dto.ContactListQuery) (*dto.ContactListResponse, error) {
	q.Normalize(20, 100)
	list, total, err := uc.repo.List(ctx, strings.TrimSpace(q.Search), q.Limit, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar contactos: %w", err)
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toContactResponse(c))
	}
	return &dto.ContactListResponse{Items: items, Page: dto.NewPageResponse(q.PageRequest, total)}, nil
}

// Delete elimina un mensaje.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// verifyCaptcha traduce cualquier fallo del verificador a ErrCaptchaFailed.
func verifyCaptcha(ctx context.Context, v ports.CaptchaVerifier, token, remoteIP string) error {
	ok, err := v.Verify(ctx, token, remoteIP)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCaptchaFailed, err)
	}
	if !ok {
		return domain.ErrCaptchaFailed
	}
	return nil
}

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Message:     c.Message,
		CreatedAt:   c.CreatedAt,
	}
}
