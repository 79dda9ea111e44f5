package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// Los fakes embeben la interfaz y solo implementan lo que el resumen consulta.

type countUsers struct {
	repository.UserRepository
	n int
}

func (c countUsers) Count(context.Context) (int, error) { return c.n, nil }

type countProducts struct {
	repository.ProductRepository
	n   int
	err error
}

func (c countProducts) Count(context.Context) (int, error) { return c.n, c.err }

type countContacts struct {
	repository.ContactRepository
	n int
}

func (c countContacts) Count(context.Context) (int, error) { return c.n, nil }

type listServices struct {
	repository.ServiceRequestRepository
	list     []*entity.ServiceRequest
	byStatus map[string]int
}

func (l listServices) CountByStatus(context.Context) (map[string]int, error) { return l.byStatus, nil }

func (l listServices) ListAll(context.Context) ([]*entity.ServiceRequest, error) { return l.list, nil }

func (l listServices) GetByID(_ context.Context, id string) (*entity.ServiceRequest, error) {
	for _, sr := range l.list {
		if sr.ID == id {
			return sr, nil
		}
	}
	return nil, nil
}

type recentActivities struct {
	list      []*entity.RecentActivity
	lastLimit int
}

func (r *recentActivities) Append(context.Context, *entity.RecentActivity) error { return nil }

func (r *recentActivities) ListRecent(_ context.Context, limit int) ([]*entity.RecentActivity, error) {
	r.lastLimit = limit
	return r.list, nil
}

func TestGetSummary(t *testing.T) {
	acts := &recentActivities{list: []*entity.RecentActivity{
		{ID: "a1", Activity: "Servis baru", Description: "Budi - Laptop ASUS", Timestamp: time.Now()},
	}}
	uc := NewDashboardUseCase(
		countUsers{n: 7},
		countProducts{n: 12},
		countContacts{n: 3},
		listServices{byStatus: map[string]int{servicerequest.StatusPending: 2, servicerequest.StatusCompleted: 4}},
		acts,
	)

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, got.Users)
	assert.Equal(t, 12, got.Products)
	assert.Equal(t, 3, got.Contacts)
	assert.Equal(t, 6, got.ServiceRequests)
	assert.Equal(t, 0, got.ServicesByStatus[servicerequest.StatusRejected])
	assert.Len(t, got.ServicesByStatus, len(servicerequest.Statuses))
	require.Len(t, got.RecentActivities, 1)
	assert.Equal(t, "Servis baru", got.RecentActivities[0].Activity)
	assert.Equal(t, dashboardRecentActivities, acts.lastLimit)
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	boom := errors.New("boom")
	uc := NewDashboardUseCase(
		countUsers{}, countProducts{err: boom}, countContacts{},
		listServices{}, &recentActivities{},
	)
	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSnapshot(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	list := []*entity.ServiceRequest{
		{ID: "3", Brand: "Lenovo", Damage: "wifi hilang", Status: servicerequest.StatusPending, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "2", Brand: "ASUS", Damage: "Layar mati total", Status: servicerequest.StatusInProgress, CreatedAt: base.Add(time.Hour)},
		{ID: "1", Brand: "ASUS", Damage: "layar berkedip", Status: servicerequest.StatusCompleted, CreatedAt: base},
	}
	uc := NewServiceStatsUseCase(listServices{list: list})
	uc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }

	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "Juni 2024", snap.Period)
	assert.Equal(t, 1, snap.ByStatus[servicerequest.StatusPending])
	assert.Equal(t, 0, snap.ByStatus[servicerequest.StatusRejected])
	require.NotEmpty(t, snap.TopIssues)
	assert.Equal(t, servicerequest.KeywordCount{Keyword: "layar", Count: 2}, snap.TopIssues[0])
	assert.Equal(t, servicerequest.KeywordCount{Keyword: "ASUS", Count: 2}, snap.TopBrands[0])
	assert.Equal(t, "3", snap.Recent[0].ID)
}

func TestGet_Inexistente(t *testing.T) {
	uc := NewServiceStatsUseCase(listServices{})
	sr, err := uc.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, sr)
}
