package testutil

import (
	"context"
	"sync"

	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// MockProfileRepository is an in-memory profile.Repository with error injection
type MockProfileRepository struct {
	mu            sync.Mutex
	Profiles      map[string]*profile.Profile
	CreateCalls   int
	CreateError   error
	GetError      error
	GetEmailError error
}

// NewMockProfileRepository creates an empty mock repository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{Profiles: make(map[string]*profile.Profile)}
}

// Put stores p directly
func (m *MockProfileRepository) Put(p *profile.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.Profiles[p.ID] = &cp
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Profiles[id]
	if !ok {
		return nil, errors.NotFound("Profile")
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEmailError != nil {
		return nil, m.GetEmailError
	}
	for _, p := range m.Profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Profile")
}

func (m *MockProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.Profiles[p.ID]; exists {
		return errors.Conflict("profile already exists")
	}
	cp := *p
	m.Profiles[p.ID] = &cp
	return nil
}

// Count returns the number of stored profiles
func (m *MockProfileRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Profiles)
}

// FakeAuthProvider maps access tokens to users
type FakeAuthProvider struct {
	mu       sync.Mutex
	Users    map[string]*gateway.User
	Err      error
	SignOuts int
}

// NewFakeAuthProvider creates a provider knowing the given token to user pairs
func NewFakeAuthProvider(users map[string]*gateway.User) *FakeAuthProvider {
	if users == nil {
		users = make(map[string]*gateway.User)
	}
	return &FakeAuthProvider{Users: users}
}

func (f *FakeAuthProvider) CurrentUser(ctx context.Context) (*gateway.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Users[gateway.AccessToken(ctx)], nil
}

func (f *FakeAuthProvider) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignOuts++
	return f.Err
}
