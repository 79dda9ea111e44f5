package http_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/assistant"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/pdf"
	apphttp "github.com/irvanshandika/PUSCOM-sub000/internal/interfaces/http"
	pkgjwt "github.com/irvanshandika/PUSCOM-sub000/pkg/jwt"
)

// ── Repositorios en memoria ──────────────────────────────────────────────────
// Embeben la interfaz: un método no implementado hace panic si algún test lo llega a usar.

type memUsers struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *memUsers) List(_ context.Context, search string, _, _ int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range m.users {
		if search == "" || strings.Contains(strings.ToLower(u.DisplayName+" "+u.Email), strings.ToLower(search)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

type memProducts struct {
	repository.ProductRepository
	mu   sync.Mutex
	rows map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProducts) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) UpdateStock(_ context.Context, id string, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

type memServiceRequests struct {
	repository.ServiceRequestRepository
	mu   sync.Mutex
	list []*entity.ServiceRequest
}

func (m *memServiceRequests) Create(_ context.Context, sr *entity.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sr
	m.list = append(m.list, &cp)
	return nil
}

func (m *memServiceRequests) GetByID(_ context.Context, id string) (*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sr := range m.list {
		if sr.ID == id {
			cp := *sr
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memServiceRequests) ListAll(context.Context) ([]*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]*entity.ServiceRequest(nil), m.list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memServiceRequests) UpdateStatus(_ context.Context, u repository.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sr := range m.list {
		if sr.ID != u.ID {
			continue
		}
		if sr.Status != u.From {
			return domain.ErrConflict
		}
		sr.Status = u.To
		sr.RejectedReason = u.RejectedReason
		sr.TechnicianName = u.TechnicianName
		sr.TechnicianPhone = u.TechnicianPhone
		sr.UpdatedAt = u.UpdatedAt
		return nil
	}
	return domain.ErrNotFound
}

type memActivities struct {
	mu        sync.Mutex
	list      []*entity.RecentActivity
	lastLimit int
}

func (m *memActivities) Append(_ context.Context, a *entity.RecentActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, a)
	return nil
}

func (m *memActivities) ListRecent(_ context.Context, limit int) ([]*entity.RecentActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if limit > len(m.list) {
		limit = len(m.list)
	}
	return m.list[:limit], nil
}

type memContacts struct {
	repository.ContactRepository
	mu   sync.Mutex
	rows map[string]*entity.Contact
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memContacts) List(_ context.Context, _ string, limit, offset int) ([]*entity.Contact, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Contact, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// switchCaptcha resultado configurable por test; por defecto acepta.
type switchCaptcha struct {
	mu  sync.Mutex
	ok  bool
	err error
}

func (s *switchCaptcha) set(ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ok, s.err = ok, err
}

func (s *switchCaptcha) Verify(context.Context, string, string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ok, s.err
}

type inlineTx struct{ repos ports.TxRepos }

func (t inlineTx) Run(_ context.Context, fn func(ports.TxRepos) error) error { return fn(t.repos) }

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	s.puts++
	return s.URL(key), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) List(context.Context, string) ([]ports.ObjectInfo, error) { return nil, nil }

func (s *memStorage) URL(key string) string { return "/uploads/" + key }

func (s *memStorage) KeyFromURL(u string) (string, bool) { return strings.CutPrefix(u, "/uploads/") }

// ── Modelo de chat ───────────────────────────────────────────────────────────

type scriptedModel struct {
	mu     sync.Mutex
	got    []ports.Message
	chunks []string
	err    error // se devuelve después de emitir chunks
}

func (m *scriptedModel) Name() string { return "fake" }

func (m *scriptedModel) Stream(_ context.Context, msgs []ports.Message, _ ports.GenerationConfig, onChunk func(string) error) error {
	m.mu.Lock()
	m.got = msgs
	m.mu.Unlock()
	for _, c := range m.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return m.err
}

func (m *scriptedModel) received() []ports.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.got
}

// ── App de prueba ────────────────────────────────────────────────────────────

const (
	customerUID = "cust-1"
	otherUID    = "cust-2"
	teknisiUID  = "tek-1"
	adminUID    = "adm-1"
)

type testEnv struct {
	app        *fiber.App
	users      *memUsers
	products   *memProducts
	requests   *memServiceRequests
	contacts   *memContacts
	activities *memActivities
	captcha    *switchCaptcha
	storage    *memStorage
	model      *scriptedModel
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	users := &memUsers{users: map[string]*entity.User{
		customerUID: {ID: customerUID, DisplayName: "Budi", Email: "budi@mail.id", PhoneNumber: "081234567890", Role: entity.RoleUser},
		otherUID:    {ID: otherUID, DisplayName: "Sari", Email: "sari@mail.id", PhoneNumber: "081298765432", Role: entity.RoleUser},
		teknisiUID:  {ID: teknisiUID, DisplayName: "Andi", Email: "andi@puscom.id", PhoneNumber: "081111111111", Role: entity.RoleTeknisi},
	}}
	users.users[adminUID] = &entity.User{ID: adminUID, DisplayName: "Admin", Email: "admin@puscom.id", Role: entity.RoleAdmin}
	products := &memProducts{rows: map[string]*entity.Product{}}
	requests := &memServiceRequests{}
	acts := &memActivities{}
	contacts := &memContacts{rows: map[string]*entity.Contact{}}
	storage := &memStorage{objects: map[string][]byte{}}
	verifier := &switchCaptcha{ok: true}
	model := &scriptedModel{}

	activityUC := usecase.NewActivityUseCase(acts, log)
	srUC := usecase.NewServiceRequestUseCase(requests, users, inlineTx{repos: ports.TxRepos{ServiceRequests: requests, Activities: acts}},
		storage, verifier, activityUC, log)
	contactUC := usecase.NewContactUseCase(contacts, verifier, activityUC)
	productUC := usecase.NewProductUseCase(products, storage, activityUC, log)
	userUC := usecase.NewUserUseCase(users, storage, activityUC, log)
	chatUC := assistant.NewChatUseCase(assistant.Models{Gemini: model}, nil, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UserUC:           userUC,
		ProductUC:        productUC,
		ServiceRequestUC: srUC,
		ContactUC:        contactUC,
		ActivityUC:       activityUC,
		ChatUC:           chatUC,
		Receipt:          pdf.NewMarotoPDFGenerator("https://puscom.id"),
		Captcha:          verifier,
		BaseCtx:          context.Background(),
		JWTSecret:        testJWTSecret,
		Log:              log,
	})
	return &testEnv{
		app:        app,
		users:      users,
		products:   products,
		requests:   requests,
		contacts:   contacts,
		activities: acts,
		captcha:    verifier,
		storage:    storage,
		model:      model,
	}
}

func tokenFor(t *testing.T, uid, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, uid, uid+"@mail.id", role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// pngBytes cabecera PNG válida para que la detección de tipo la reconozca como imagen.
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

// intakeRequest arma el multipart del formulario de ingreso con n fotos.
func intakeRequest(t *testing.T, fields map[string]string, n int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i := 0; i < n; i++ {
		fw, err := w.CreateFormFile("images", "foto.png")
		require.NoError(t, err)
		_, err = fw.Write(pngBytes())
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/service-requests", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
