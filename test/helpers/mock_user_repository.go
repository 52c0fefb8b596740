package helpers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// MockUserRepository is a test double for UserRepository
type MockUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*user.User // userID -> user
	byEmail map[string]*user.User // email -> user
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

// AddUser seeds a user
func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID.Value()] = u
	m.byEmail[u.Email] = u
}

// FindByID retrieves a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, userID shared.UserID) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID.Value()]
	if !ok {
		return nil, shared.NewNotFoundError("user", userID.Value())
	}
	return u, nil
}

// FindByEmail retrieves a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, shared.NewNotFoundError("user", email)
	}
	return u, nil
}

// Add stores a user
func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	m.AddUser(u)
	return nil
}

// DeleteByEmail removes a user. Ships and sessions are not tracked here.
func (m *MockUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.byEmail[email]; ok {
		delete(m.users, u.ID.Value())
		delete(m.byEmail, email)
	}
	return nil
}

// MockSessionRepository is a test double for SessionRepository
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*user.Session

	FindCalls int
}

// NewMockSessionRepository creates a new mock session repository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*user.Session),
	}
}

// FindByID retrieves a session
func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*user.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, shared.NewNotFoundError("session", sessionID)
	}
	return s, nil
}

// Add stores a session
func (m *MockSessionRepository) Add(ctx context.Context, s *user.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Delete removes a session
func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// DeleteExpired removes sessions expired at now
func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			count++
		}
	}
	return count, nil
}

// Has reports whether a session is stored
func (m *MockSessionRepository) Has(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok
}

// PlainPasswordHasher is a reversible PasswordHasher for fast tests
type PlainPasswordHasher struct{}

// Hash prefixes the password
func (PlainPasswordHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

// Compare checks the prefixed password
func (PlainPasswordHasher) Compare(hash, password string) error {
	if hash != "plain:"+password {
		return shared.NewValidationError("password", "mismatch")
	}
	return nil
}
