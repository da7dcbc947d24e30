// Package admin implements the client-trusted admin flag: a
// password-bearing query parameter buys a 60-minute session token.
// Tokens live in memory only; a restart logs everyone out. Not real
// authentication, just a gate on the edit endpoints.
package admin

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionDuration is how long an enabled admin session lasts.
const SessionDuration = 60 * time.Minute

// Manager hands out and validates admin session tokens.
type Manager struct {
	password string

	mu       sync.Mutex
	sessions map[string]time.Time

	now func() time.Time
}

// NewManager creates a manager. An empty password disables admin mode
// entirely.
func NewManager(password string) *Manager {
	return &Manager{
		password: password,
		sessions: map[string]time.Time{},
		now:      time.Now,
	}
}

// Enable trades the correct password for a fresh session token.
func (m *Manager) Enable(password string) (string, bool) {
	if m.password == "" || password != m.password {
		return "", false
	}
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = m.now().Add(SessionDuration)
	m.mu.Unlock()
	return token, true
}

// Valid reports whether the token names a live session. Expired tokens
// are dropped on the way out.
func (m *Manager) Valid(token string) bool {
	if token == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}

// Logout ends the session immediately.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
