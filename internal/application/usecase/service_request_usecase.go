package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// Actor quién ejecuta la operación (resuelto por el middleware de auth).
type Actor struct {
	UID  string
	Role string
}

// IsStaff admin o teknisi.
func (a Actor) IsStaff() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleTeknisi
}

// ServiceRequestUseCase ingreso de solicitudes, recibo, historial y ciclo de estados del panel.
type ServiceRequestUseCase struct {
	repo       repository.ServiceRequestRepository
	users      repository.UserRepository
	tx         ports.TxRunner
	storage    ports.ObjectStorage
	captcha    ports.CaptchaVerifier
	activities *ActivityUseCase
	log        zerolog.Logger
	now        func() time.Time
}

// NewServiceRequestUseCase construye el caso de uso.
func NewServiceRequestUseCase(
	repo repository.ServiceRequestRepository,
	users repository.UserRepository,
	tx ports.TxRunner,
	storage ports.ObjectStorage,
	captcha ports.CaptchaVerifier,
	activities *ActivityUseCase,
	log zerolog.Logger,
) *ServiceRequestUseCase {
	return &ServiceRequestUseCase{
		repo:       repo,
		users:      users,
		tx:         tx,
		storage:    storage,
		captcha:    captcha,
		activities: activities,
		log:        log,
		now:        time.Now,
	}
}

// ── Ingreso ──────────────────────────────────────────────────────────────────

// Submit registra una solicitud nueva en estado pending.
//
// Orden: CAPTCHA, validación del formulario y del número de fotos, subida de fotos
// (con compensación si una falla) y finalmente la fila más su actividad en una sola transacción.
// Si la transacción falla se eliminan las fotos ya subidas.
func (uc *ServiceRequestUseCase) Submit(ctx context.Context, actor Actor, in dto.SubmitServiceRequestInput) (*dto.ServiceRequestResponse, error) {
	if err := verifyCaptcha(ctx, uc.captcha, in.Form.CaptchaToken, in.RemoteIP); err != nil {
		return nil, err
	}
	if err := servicerequest.CheckImageCount(len(in.Images)); err != nil {
		return nil, err
	}

	sr, err := uc.buildRequest(ctx, actor, in.Form)
	if err != nil {
		return nil, err
	}
	if err := servicerequest.ValidateDevice(sr); err != nil {
		return nil, err
	}

	stored, err := uc.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	for _, o := range stored {
		sr.Images = append(sr.Images, o.URL)
	}

	act := uc.activities.NewActivity(actor.UID, "Permintaan servis baru",
		fmt.Sprintf("%s mengajukan servis %s: %s", sr.Name, deviceLabel(sr), truncate(sr.Damage, 80)))

	inTx := false
	err = uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		if err := tx.ServiceRequests.Create(ctx, sr); err != nil {
			return fmt.Errorf("crear solicitud: %w", err)
		}
		if tx.Activities != nil {
			inTx = true
			if err := tx.Activities.Append(ctx, act); err != nil {
				return fmt.Errorf("registrar actividad: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.discard(stored)
		return nil, err
	}
	if !inTx {
		if err := uc.activities.Append(ctx, act); err != nil {
			uc.log.Error().Err(err).Str("service_request_id", sr.ID).Msg("no se pudo registrar la actividad de la solicitud")
		}
	}

	uc.log.Info().Str("service_request_id", sr.ID).Str("uid", actor.UID).Int("images", len(sr.Images)).Msg("solicitud de servicio registrada")
	return toServiceRequestResponse(sr, false), nil
}

// buildRequest arma la entidad completando los datos personales desde el perfil.
func (uc *ServiceRequestUseCase) buildRequest(ctx context.Context, actor Actor, f dto.CreateServiceRequestForm) (*entity.ServiceRequest, error) {
	u, err := uc.users.GetByID(ctx, actor.UID)
	if err != nil {
		return nil, fmt.Errorf("cargar perfil: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	name := firstNonEmpty(f.Name, u.DisplayName)
	email := firstNonEmpty(f.Email, u.Email)
	phone := firstNonEmpty(f.PhoneNumber, u.PhoneNumber)
	if name == "" || email == "" || phone == "" {
		return nil, fmt.Errorf("%w: nombre, email y teléfono son obligatorios", domain.ErrInvalidInput)
	}
	// el teléfono del perfil no pasó por la validación del formulario
	if !servicerequest.ValidPhone(phone) {
		return nil, fmt.Errorf("%w: phone_number %q no es un número válido", domain.ErrInvalidInput, phone)
	}

	brand := strings.TrimSpace(f.Brand)
	customBrand := ""
	if brand == entity.BrandOther {
		customBrand = strings.TrimSpace(f.CustomBrand)
	}
	now := uc.now()
	sr := &entity.ServiceRequest{
		ID:          uuid.New().String(),
		UserID:      actor.UID,
		Name:        name,
		PhoneNumber: phone,
		Email:       email,
		DeviceType:  f.DeviceType,
		Damage:      f.Damage,
		Date:        f.Date,
		Images:      []string{},
		Status:      servicerequest.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch f.DeviceType {
	case entity.DeviceLaptop:
		sr.Brand = brand
		sr.CustomBrand = customBrand
		sr.Model = strings.TrimSpace(f.Model)
	case entity.DeviceKomputer:
		sr.ComputerTypes = strings.TrimSpace(f.ComputerTypes)
	}
	return sr, nil
}

// uploadAll sube las fotos en orden; si una falla elimina las anteriores.
func (uc *ServiceRequestUseCase) uploadAll(ctx context.Context, files []dto.FileInput) ([]storedObject, error) {
	stored := make([]storedObject, 0, len(files))
	used := make(map[string]bool, len(files))
	for i, f := range files {
		key := servicerequest.ObjectKey(uc.now(), f.Filename)
		if used[key] {
			key = servicerequest.ObjectKey(uc.now(), fmt.Sprintf("%d-%s", i, f.Filename))
		}
		used[key] = true
		obj, err := putImage(ctx, uc.storage, key, f, servicerequest.MaxImageBytes)
		if err != nil {
			uc.discard(stored)
			return nil, err
		}
		stored = append(stored, obj)
	}
	return stored, nil
}

// discard compensación: borra objetos ya subidos. Usa un contexto propio para no depender del request cancelado.
func (uc *ServiceRequestUseCase) discard(objs []storedObject) {
	if len(objs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, o := range objs {
		if err := uc.storage.Delete(ctx, o.Key); err != nil {
			uc.log.Error().Err(err).Str("key", o.Key).Msg("compensación: no se pudo eliminar la foto")
		}
	}
}

// ── Lectura ──────────────────────────────────────────────────────────────────

// Get devuelve una solicitud (recibo). Solo el dueño o el personal pueden leerla.
func (uc *ServiceRequestUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.ServiceRequestResponse, error) {
	sr, err := uc.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toServiceRequestResponse(sr, actor.IsStaff()), nil
}

// Load igual que Get pero devuelve la entidad (para el PDF del recibo).
func (uc *ServiceRequestUseCase) Load(ctx context.Context, actor Actor, id string) (*entity.ServiceRequest, error) {
	sr, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}
	if sr.UserID != actor.UID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return sr, nil
}

// ListMine historial del usuario autenticado.
func (uc *ServiceRequestUseCase) ListMine(ctx context.Context, actor Actor) ([]dto.ServiceRequestResponse, error) {
	list, err := uc.repo.ListByUser(ctx, actor.UID)
	if err != nil {
		return nil, fmt.Errorf("listar solicitudes: %w", err)
	}
	out := make([]dto.ServiceRequestResponse, 0, len(list))
	for _, sr := range list {
		out = append(out, *toServiceRequestResponse(sr, false))
	}
	return out, nil
}

// Board carga la colección completa y la agrupa en las cuatro pestañas del panel.
func (uc *ServiceRequestUseCase) Board(ctx context.Context) (*dto.ServiceBoardResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar solicitudes: %w", err)
	}
	byStatus := make(map[string][]dto.ServiceRequestResponse, len(servicerequest.Statuses))
	for _, sr := range list {
		byStatus[sr.Status] = append(byStatus[sr.Status], *toServiceRequestResponse(sr, true))
	}
	out := &dto.ServiceBoardResponse{
		Total:  len(list),
		Counts: make(map[string]int, len(servicerequest.Statuses)),
		Tabs:   make([]dto.ServiceTab, 0, len(servicerequest.Statuses)),
	}
	for _, s := range servicerequest.Statuses {
		items := byStatus[s]
		if items == nil {
			items = []dto.ServiceRequestResponse{}
		}
		out.Counts[s] = len(items)
		out.Tabs = append(out.Tabs, dto.ServiceTab{
			Status: s,
			Label:  servicerequest.Label(s),
			Count:  len(items),
			Items:  items,
		})
	}
	return out, nil
}

// ── Ciclo de estados ─────────────────────────────────────────────────────────

// Transition mueve la solicitud al estado pedido. Firma al técnico que actúa,
// hace compare-and-set sobre el estado leído y registra la actividad en la misma transacción.
func (uc *ServiceRequestUseCase) Transition(ctx context.Context, actor Actor, id string, in dto.UpdateStatusRequest) (*dto.ServiceRequestResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	sr, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}
	if err := servicerequest.ValidateTransition(sr.Status, in.Status, in.RejectedReason); err != nil {
		return nil, err
	}
	tech, err := uc.users.GetByID(ctx, actor.UID)
	if err != nil {
		return nil, fmt.Errorf("cargar técnico: %w", err)
	}
	if tech == nil {
		return nil, domain.ErrUserNotFound
	}

	upd := repository.StatusUpdate{
		ID:              sr.ID,
		From:            sr.Status,
		To:              in.Status,
		TechnicianName:  tech.DisplayName,
		TechnicianPhone: tech.PhoneNumber,
		UpdatedAt:       uc.now(),
	}
	if in.Status == servicerequest.StatusRejected {
		upd.RejectedReason = strings.TrimSpace(in.RejectedReason)
	}
	act := uc.activities.NewActivity(actor.UID, "Status servis diperbarui",
		fmt.Sprintf("Servis %s (%s) %s -> %s oleh %s", sr.Name, deviceLabel(sr),
			servicerequest.Label(upd.From), servicerequest.Label(upd.To), tech.DisplayName))

	inTx := false
	err = uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		if err := tx.ServiceRequests.UpdateStatus(ctx, upd); err != nil {
			return err
		}
		if tx.Activities != nil {
			inTx = true
			return tx.Activities.Append(ctx, act)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !inTx {
		if err := uc.activities.Append(ctx, act); err != nil {
			uc.log.Error().Err(err).Str("service_request_id", sr.ID).Msg("no se pudo registrar la actividad de la transición")
		}
	}

	sr.Status = upd.To
	sr.RejectedReason = upd.RejectedReason
	sr.TechnicianName = upd.TechnicianName
	sr.TechnicianPhone = upd.TechnicianPhone
	sr.UpdatedAt = upd.UpdatedAt
	uc.log.Info().Str("service_request_id", sr.ID).Str("from", upd.From).Str("to", upd.To).Str("by", actor.UID).Msg("estado de servicio actualizado")
	return toServiceRequestResponse(sr, true), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func deviceLabel(sr *entity.ServiceRequest) string {
	if sr.DeviceType == entity.DeviceKomputer {
		return strings.TrimSpace("Komputer " + sr.ComputerTypes)
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", sr.DeviceType, sr.BrandLabel(), sr.Model))
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func toServiceRequestResponse(sr *entity.ServiceRequest, withOptions bool) *dto.ServiceRequestResponse {
	images := sr.Images
	if images == nil {
		images = []string{}
	}
	out := &dto.ServiceRequestResponse{
		ID:              sr.ID,
		UserID:          sr.UserID,
		Name:            sr.Name,
		PhoneNumber:     sr.PhoneNumber,
		Email:           sr.Email,
		DeviceType:      sr.DeviceType,
		ComputerTypes:   sr.ComputerTypes,
		Brand:           sr.Brand,
		CustomBrand:     sr.CustomBrand,
		Model:           sr.Model,
		Damage:          sr.Damage,
		Date:            sr.Date,
		Images:          images,
		Status:          sr.Status,
		StatusLabel:     servicerequest.Label(sr.Status),
		RejectedReason:  sr.RejectedReason,
		TechnicianName:  sr.TechnicianName,
		TechnicianPhone: sr.TechnicianPhone,
		CreatedAt:       sr.CreatedAt,
		UpdatedAt:       sr.UpdatedAt,
	}
	if withOptions {
		for _, o := range servicerequest.StatusOptions(sr.Status) {
			out.StatusOptions = append(out.StatusOptions, dto.StatusOptionDTO{Value: o.Value, Label: o.Label, Disabled: o.Disabled})
		}
	}
	return out
}
