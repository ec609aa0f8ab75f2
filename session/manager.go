// Package session reimplements the client auth hook as a server-side
// session context: explicit init and teardown, dependency-injected into its
// consumers, with state always derived from a real signed token. There is
// deliberately no fallback that fabricates a session when the auth service
// errors; failures surface as the service's typed errors.
package session

import (
	"sync"

	"journeatz-api/auth"
	"journeatz-api/middleware"
	"journeatz-api/models"
)

// User is the session-derived identity.
type User struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
}

// State is what consumers branch on: authenticated or not, and who.
type State struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// Manager holds session state for one client context. It subscribes to auth
// events on construction and must be closed when its owner is torn down.
type Manager struct {
	svc *auth.Service

	mu    sync.Mutex
	token string
	state State

	unsubscribe func()
	closed      bool
}

func NewManager(svc *auth.Service) *Manager {
	m := &Manager{svc: svc}
	m.unsubscribe = svc.Subscribe(m.onAuthEvent)
	return m
}

// Close unregisters the auth-event listener. Safe to call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.unsubscribe()
}

func (m *Manager) onAuthEvent(e auth.Event, _ *models.User) {
	switch e {
	case auth.EventSignedIn, auth.EventTokenRefreshed:
		// Re-derivation is idempotent, so reacting to our own events is fine.
		m.CheckAuth()
	case auth.EventSignedOut:
		m.clear()
	}
}

// CheckAuth re-derives session state from the current token. No token or an
// expired one yields an unauthenticated state, not an error; an unrecognized
// role in the claims is an explicit error state.
func (m *Manager) CheckAuth() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		m.state = State{}
		return m.state, nil
	}
	claims, err := middleware.ParseToken(m.token)
	if err != nil {
		m.token = ""
		m.state = State{}
		return m.state, nil
	}
	role, err := models.ParseRole(string(claims.Role))
	if err != nil {
		m.state = State{}
		return m.state, err
	}
	m.state = State{
		Authenticated: true,
		User: &User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  role,
			Name:  claims.Name,
		},
	}
	return m.state, nil
}

// Login verifies credentials, establishes the session token and returns the
// derived state plus the token for the caller to hold.
func (m *Manager) Login(email, password string) (State, string, error) {
	user, err := m.svc.Authenticate(email, password)
	if err != nil {
		return State{}, "", err
	}
	token, err := middleware.GenerateToken(user)
	if err != nil {
		return State{}, "", err
	}
	m.setToken(token)
	state, err := m.CheckAuth()
	return state, token, err
}

// Signup registers an account with the role and name kept in the token
// claims, then establishes the session like Login.
func (m *Manager) Signup(email, password, role, name string) (State, string, error) {
	user, err := m.svc.Register(email, password, role, name)
	if err != nil {
		return State{}, "", err
	}
	token, err := middleware.GenerateToken(user)
	if err != nil {
		return State{}, "", err
	}
	m.setToken(token)
	state, err := m.CheckAuth()
	return state, token, err
}

// Logout signs out of the auth service and clears local state
// unconditionally.
func (m *Manager) Logout() {
	m.svc.SignOut()
	m.clear()
}

// Resume installs an existing token (e.g. from a stored credential) and
// derives state from it.
func (m *Manager) Resume(token string) (State, error) {
	m.setToken(token)
	return m.CheckAuth()
}

// Current returns the last derived state.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *Manager) clear() {
	m.mu.Lock()
	m.token = ""
	m.state = State{}
	m.mu.Unlock()
}
