// Package session tracks who is logged in for the lifetime of one process.
// Sessions are keyed by opaque tokens and live in an injectable Store; there
// is no expiry and nothing is persisted across restarts.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrAuthFailed is returned uniformly for unknown usernames and wrong
// passwords.
var ErrAuthFailed = errors.New("invalid username or password")

// ErrNoSession is returned when a token does not resolve to a live session.
var ErrNoSession = errors.New("not logged in")

// Session is the per-login state: the authenticated user and the chart
// pagination cursor.
type Session struct {
	Username  string
	ChartPage int
}

// Store holds live sessions keyed by token.
type Store interface {
	Get(token string) (Session, bool)
	Put(token string, s Session)
	Delete(token string)
}

// MemoryStore is the in-process Store used by the server and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(token string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

func (m *MemoryStore) Put(token string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
}

func (m *MemoryStore) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(username, password string) (bool, error)
}

// Manager drives the anonymous/authenticated state machine.
type Manager struct {
	auth  Authenticator
	store Store
}

// NewManager creates a Manager over a credential checker and a session store.
func NewManager(auth Authenticator, store Store) *Manager {
	return &Manager{auth: auth, store: store}
}

// Login authenticates and issues a fresh session token. The chart page
// cursor starts at 0 on every login.
func (m *Manager) Login(username, password string) (string, error) {
	ok, err := m.auth.Authenticate(username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAuthFailed
	}

	token := uuid.NewString()
	m.store.Put(token, Session{Username: username, ChartPage: 0})
	return token, nil
}

// Logout deletes the session for a token. Unknown tokens are a no-op.
func (m *Manager) Logout(token string) {
	m.store.Delete(token)
}

// Current resolves a token to its session.
func (m *Manager) Current(token string) (Session, error) {
	s, ok := m.store.Get(token)
	if !ok {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// NextChartPage advances the chart cursor by one page, wrapping past the
// last page back to 0, and returns the new page.
func (m *Manager) NextChartPage(token string, totalPages int) (int, error) {
	return m.turnChartPage(token, totalPages, 1)
}

// PrevChartPage retreats the chart cursor by one page, wrapping from 0 to
// the last page, and returns the new page.
func (m *Manager) PrevChartPage(token string, totalPages int) (int, error) {
	return m.turnChartPage(token, totalPages, -1)
}

func (m *Manager) turnChartPage(token string, totalPages, step int) (int, error) {
	s, ok := m.store.Get(token)
	if !ok {
		return 0, ErrNoSession
	}
	if totalPages <= 0 {
		s.ChartPage = 0
	} else {
		s.ChartPage = ((s.ChartPage+step)%totalPages + totalPages) % totalPages
	}
	m.store.Put(token, s)
	return s.ChartPage, nil
}
