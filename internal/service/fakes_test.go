package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/export"
)

type fakeEngagementRepo struct {
	engagements []models.Engagement
	inserted    []models.Engagement
	err         error
	allCalls    int
	lastLimit   int
}

func (f *fakeEngagementRepo) Insert(_ context.Context, e *models.Engagement) error {
	if f.err != nil {
		return f.err
	}
	e.ID = "generated-id"
	f.inserted = append(f.inserted, *e)
	return nil
}

func (f *fakeEngagementRepo) All(context.Context) ([]models.Engagement, error) {
	f.allCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.engagements, nil
}

func (f *fakeEngagementRepo) Recent(_ context.Context, limit int) ([]models.Engagement, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.engagements, nil
}

type fakeServiceRepo struct {
	services map[string]models.Service
	order    []string
	err      error
	upserts  int
}

func newFakeServiceRepo(services ...models.Service) *fakeServiceRepo {
	f := &fakeServiceRepo{services: map[string]models.Service{}}
	for _, svc := range services {
		f.services[svc.ID] = svc
		f.order = append(f.order, svc.ID)
	}
	return f
}

func (f *fakeServiceRepo) List(context.Context) ([]models.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Service
	for _, id := range f.order {
		if svc, ok := f.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id string) (*models.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	svc, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (f *fakeServiceRepo) Upsert(_ context.Context, svc models.Service) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	if _, ok := f.services[svc.ID]; !ok {
		f.order = append(f.order, svc.ID)
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.services, id)
	return nil
}

type fakeAdminRepo struct {
	admins   map[string]models.Admin
	findErr  error
	countErr error
	created  []models.Admin
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	admin, ok := f.admins[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &admin, nil
}

func (f *fakeAdminRepo) Count(context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.admins), nil
}

func (f *fakeAdminRepo) Create(_ context.Context, admin models.Admin) error {
	if f.admins == nil {
		f.admins = map[string]models.Admin{}
	}
	f.admins[admin.Username] = admin
	f.created = append(f.created, admin)
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]models.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionStore) FindByID(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &session, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type fakeCacheRepo struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.sets++
	f.entries[key] = raw
	return nil
}

type fakePDF struct {
	report export.Report
	err    error
}

func (f *fakePDF) Render(report export.Report) ([]byte, error) {
	f.report = report
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}
