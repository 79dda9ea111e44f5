package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// ── Repositorios en memoria ──────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUsers(us ...*entity.User) *memUsers {
	m := &memUsers{users: map[string]*entity.User{}}
	for _, u := range us {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Role = role
		return nil
	}
	return domain.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memUsers) List(_ context.Context, search string, limit, offset int) ([]*entity.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.users {
		if search == "" || strings.Contains(strings.ToLower(u.DisplayName+" "+u.Email), strings.ToLower(search)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type memServiceRequests struct {
	mu   sync.Mutex
	rows map[string]*entity.ServiceRequest
}

func newMemServiceRequests() *memServiceRequests {
	return &memServiceRequests{rows: map[string]*entity.ServiceRequest{}}
}

func (m *memServiceRequests) Create(_ context.Context, sr *entity.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sr
	cp.Images = append([]string(nil), sr.Images...)
	m.rows[sr.ID] = &cp
	return nil
}

func (m *memServiceRequests) GetByID(_ context.Context, id string) (*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sr, ok := m.rows[id]; ok {
		cp := *sr
		return &cp, nil
	}
	return nil, nil
}

func (m *memServiceRequests) ListAll(context.Context) ([]*entity.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.ServiceRequest, 0, len(m.rows))
	for _, sr := range m.rows {
		cp := *sr
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memServiceRequests) ListByUser(ctx context.Context, uid string) ([]*entity.ServiceRequest, error) {
	all, _ := m.ListAll(ctx)
	var out []*entity.ServiceRequest
	for _, sr := range all {
		if sr.UserID == uid {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (m *memServiceRequests) UpdateStatus(_ context.Context, u repository.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sr, ok := m.rows[u.ID]
	if !ok {
		return domain.ErrNotFound
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

func (m *memServiceRequests) CountByStatus(context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, sr := range m.rows {
		out[sr.Status]++
	}
	return out, nil
}

type memActivities struct {
	mu   sync.Mutex
	list []*entity.RecentActivity
	err  error
}

func (m *memActivities) Append(_ context.Context, a *entity.RecentActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.list = append(m.list, a)
	return nil
}

func (m *memActivities) ListRecent(_ context.Context, limit int) ([]*entity.RecentActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.RecentActivity, 0, len(m.list))
	for i := len(m.list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.list[i])
	}
	return out, nil
}

func (m *memActivities) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.list)
}

// fakeTx ejecuta fn sin transacción real; failCommit simula un error al confirmar.
type fakeTx struct {
	repos      ports.TxRepos
	failCommit error
}

func (f *fakeTx) Run(_ context.Context, fn func(tx ports.TxRepos) error) error {
	if err := fn(f.repos); err != nil {
		return err
	}
	return f.failCommit
}

// ── Almacenamiento en memoria ────────────────────────────────────────────────

type memObject struct {
	data    []byte
	modTime time.Time
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string]memObject
	puts    int
	failOn  int // número de Put (1-based) que falla; 0 = nunca
	now     func() time.Time
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string]memObject{}, now: time.Now}
}

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failOn > 0 && s.puts == s.failOn {
		return "", errors.New("disk full")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.objects[key] = memObject{data: buf.Bytes(), modTime: s.now()}
	return s.URL(key), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return errors.New("not found")
	}
	delete(s.objects, key)
	return nil
}

func (s *memStorage) List(_ context.Context, prefix string) ([]ports.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.ObjectInfo
	for k, o := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ports.ObjectInfo{Key: k, Size: int64(len(o.data)), ModTime: o.modTime})
		}
	}
	return out, nil
}

func (s *memStorage) URL(key string) string { return "/uploads/" + key }

func (s *memStorage) KeyFromURL(u string) (string, bool) {
	if !strings.HasPrefix(u, "/uploads/") {
		return "", false
	}
	return strings.TrimPrefix(u, "/uploads/"), true
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type stubCaptcha struct {
	ok    bool
	err   error
	calls int
}

func (s *stubCaptcha) Verify(context.Context, string, string) (bool, error) {
	s.calls++
	return s.ok, s.err
}

// ── Archivos de prueba ───────────────────────────────────────────────────────

// pngHeader cabecera mínima para que http.DetectContentType devuelva image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func imageFile(name string) dto.FileInput {
	data := append(append([]byte{}, pngHeader...), []byte(name)...)
	return dto.FileInput{
		Filename: name,
		Size:     int64(len(data)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func textFile(name string) dto.FileInput {
	data := []byte("hello, this is not an image")
	return dto.FileInput{
		Filename: name,
		Size:     int64(len(data)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}
