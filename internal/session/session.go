// Package session centralizes authentication state. The token is set at
// login, read by the API client for the Authorization header, and cleared
// process-wide when any call comes back 401. Collaborators receive the
// session by injection; nothing reads token storage ad hoc.
package session

import (
	"log/slog"
	"sync"
)

// User roles on the platform.
const (
	RoleAdmin        = "Admin"
	RoleSeller       = "Seller"
	RoleBuyer        = "Buyer"
	RoleProxyShopper = "ProxyShopper"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	SaveConfig(key, value string) error
	LoadConfigMap() (map[string]string, error)
}

const tokenKey = "session_token"

// Session holds the process-wide authentication state.
type Session struct {
	mu     sync.RWMutex
	token  string
	userID string
	role   string

	store          TokenStore // optional
	onUnauthorized []func()
	logger         *slog.Logger
}

// New creates an empty session. store may be nil for ephemeral sessions.
func New(store TokenStore) *Session {
	s := &Session{
		store:  store,
		logger: slog.Default().With("module", "session"),
	}
	s.restore()
	return s
}

func (s *Session) restore() {
	if s.store == nil {
		return
	}
	m, err := s.store.LoadConfigMap()
	if err != nil {
		s.logger.Warn("Failed to restore session", slog.Any("error", err))
		return
	}
	if tok, ok := m[tokenKey]; ok && tok != "" {
		s.token = tok
	}
}

// SetToken installs a new bearer token and identity after login.
func (s *Session) SetToken(token, userID, role string) {
	s.mu.Lock()
	s.token = token
	s.userID = userID
	s.role = role
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveConfig(tokenKey, token); err != nil {
			s.logger.Warn("Failed to persist token", slog.Any("error", err))
		}
	}
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns the authenticated user's id, empty when logged out.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Role returns the authenticated user's role, empty when logged out.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// OnUnauthorized registers a hook invoked when the session is invalidated
// by a 401 response (the login-redirect path in the UI).
func (s *Session) OnUnauthorized(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnauthorized = append(s.onUnauthorized, fn)
}

// Invalidate clears the session and fires the unauthorized hooks.
// The API client calls this on every 401.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.userID = ""
	s.role = ""
	hooks := make([]func(), len(s.onUnauthorized))
	copy(hooks, s.onUnauthorized)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveConfig(tokenKey, ""); err != nil {
			s.logger.Warn("Failed to clear persisted token", slog.Any("error", err))
		}
	}

	for _, fn := range hooks {
		fn()
	}
}

// Logout clears the session without treating it as an auth failure.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.userID = ""
	s.role = ""
	s.mu.Unlock()

	if s.store != nil {
		s.store.SaveConfig(tokenKey, "")
	}
}
