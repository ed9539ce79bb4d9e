// Package session owns the authenticated identity and its token lifecycle.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/credstore"
	"github.com/moneta-cli/moneta/internal/model"
)

// Generic session-layer errors. The underlying transport error is logged,
// never surfaced — callers see nothing about server internals.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrProfileUpdateFailed = errors.New("profile update failed")
)

// Manager holds the current session and is the only writer of the HTTP
// client's auth token. Callers must not overlap login/logout calls; the
// loading flag is informational, not a lock.
type Manager struct {
	client *api.Client
	creds  *credstore.Store
	log    *slog.Logger

	mu      sync.RWMutex
	user    *model.User
	token   string
	loading bool
}

// NewManager wires the session to its HTTP client and token store.
// A nil logger falls back to slog.Default().
func NewManager(client *api.Client, creds *credstore.Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{client: client, creds: creds, log: log}
}

// User returns the authenticated account, if any.
func (m *Manager) User() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

// Token returns the current session token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether a session operation is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Restore probes the profile endpoint with the persisted token, if one
// exists. Failures are logged, never returned — a stale token must not block
// startup. An invalid token is cleared from the store. With no persisted
// token, Restore returns without touching the network.
func (m *Manager) Restore(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	token, err := m.creds.Token()
	if err != nil {
		m.log.Error("reading persisted token", "err", err)
		return
	}
	if token == "" {
		return
	}

	m.client.SetAuthToken(token)

	user, err := m.client.Profile(ctx)
	if err != nil {
		m.log.Warn("session restore failed, clearing stored token", "err", err)
		if clearErr := m.creds.Clear(); clearErr != nil {
			m.log.Error("clearing stored token", "err", clearErr)
		}
		m.client.SetAuthToken("")
		return
	}

	m.mu.Lock()
	m.user = &user
	m.token = token
	m.mu.Unlock()
}

// Login exchanges credentials for a session. On any failure the caller gets
// ErrInvalidCredentials and the session stays unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	user, token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.log.Warn("login failed", "err", err)
		return ErrInvalidCredentials
	}

	m.establish(user, token)
	return nil
}

// Register creates an account and signs it in. On any failure the caller
// gets ErrRegistrationFailed.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	user, token, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		m.log.Warn("registration failed", "err", err)
		return ErrRegistrationFailed
	}

	m.establish(user, token)
	return nil
}

// Logout tears the session down. Local storage trouble is logged only —
// logout never fails the visible flow.
func (m *Manager) Logout() {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.creds.Clear(); err != nil {
		m.log.Error("clearing stored token", "err", err)
	}

	m.mu.Lock()
	m.client.SetAuthToken("")
	m.user = nil
	m.token = ""
	m.mu.Unlock()
}

// UpdateProfile applies a partial update. On failure the prior user stays in
// place and the caller gets ErrProfileUpdateFailed.
func (m *Manager) UpdateProfile(ctx context.Context, patch api.ProfilePatch) error {
	m.setLoading(true)
	defer m.setLoading(false)

	user, err := m.client.UpdateProfile(ctx, patch)
	if err != nil {
		m.log.Warn("profile update failed", "err", err)
		return ErrProfileUpdateFailed
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return nil
}

// establish persists the token and transitions to Authenticated. The auth
// header write and the state transition happen under one lock so the header
// never disagrees with the session's own token. A failed token save is
// logged and the in-memory session proceeds — it just won't survive restart.
func (m *Manager) establish(user model.User, token string) {
	if err := m.creds.Save(token); err != nil {
		m.log.Error("persisting session token", "err", err)
	}

	m.mu.Lock()
	m.client.SetAuthToken(token)
	m.user = &user
	m.token = token
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
