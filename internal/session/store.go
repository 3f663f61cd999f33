package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/upasthiti/admin-console/internal/models"
)

// ErrNoState is returned by a Store when nothing is persisted for a uid.
var ErrNoState = errors.New("session: no persisted state")

// Store persists per-identity console state across restarts.
type Store interface {
	LoadProfile(ctx context.Context, uid string) (*models.AdminProfile, error)
	SaveProfile(ctx context.Context, p *models.AdminProfile) error
	LoadSettings(ctx context.Context, uid string) (*models.AppSettings, error)
	SaveSettings(ctx context.Context, uid string, s models.AppSettings) error
	// Forget drops everything held for uid.
	Forget(ctx context.Context, uid string) error
	ProfileUIDs(ctx context.Context) ([]string, error)
}

// MemoryStore keeps state in process memory only.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.AdminProfile
	settings map[string]models.AppSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.AdminProfile),
		settings: make(map[string]models.AppSettings),
	}
}

func (m *MemoryStore) LoadProfile(_ context.Context, uid string) (*models.AdminProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNoState
	}
	return &p, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, p *models.AdminProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UID] = *p
	return nil
}

func (m *MemoryStore) LoadSettings(_ context.Context, uid string) (*models.AppSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[uid]
	if !ok {
		return nil, ErrNoState
	}
	return &s, nil
}

func (m *MemoryStore) SaveSettings(_ context.Context, uid string, s models.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[uid] = s
	return nil
}

func (m *MemoryStore) Forget(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, uid)
	delete(m.settings, uid)
	return nil
}

func (m *MemoryStore) ProfileUIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uids := make([]string, 0, len(m.profiles))
	for uid := range m.profiles {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids, nil
}
