// Package session is the single source of truth for "is a user signed in"
// and the profile/preferences of that user.
//
// A Manager is explicitly constructed and injected where needed; there is no
// package-level singleton, so tests can run isolated instances side by side.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

// Status is the session state.
type Status int

const (
	// Unresolved is the initial state before Bootstrap completes.
	Unresolved Status = iota
	// Anonymous means no valid token is held.
	Anonymous
	// Authenticated means a profile is populated.
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the façade the session layer drives.
type AuthAPI interface {
	Me(ctx context.Context) (*api.User, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResult, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error)
}

// Manager owns the session token and user profile.
type Manager struct {
	store TokenStore
	log   *logger.Logger

	mu     sync.RWMutex
	status Status
	token  string
	user   *api.User
}

// NewManager creates a manager in the Unresolved state.
func NewManager(store TokenStore, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewDefault("session")
	}
	return &Manager{
		store:  store,
		log:    log,
		status: Unresolved,
	}
}

// Token implements api.TokenSource. It returns the in-memory token, which
// tracks the persisted one.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Status returns the current session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// User returns a copy of the authenticated profile, or nil.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Bootstrap resolves the initial state from the persisted token: a token
// that yields a valid profile fetch authenticates the session; no token or
// a failed fetch leaves it anonymous. Tokens that are parseable JWTs with an
// elapsed expiry are discarded without a network round trip.
func (m *Manager) Bootstrap(ctx context.Context, auth AuthAPI) error {
	token, err := m.store.Load()
	if err != nil {
		m.log.WithError(err).Warn("token load failed, starting anonymous")
		m.setAnonymous()
		return nil
	}
	if token == "" {
		m.setAnonymous()
		return nil
	}
	if tokenExpired(token) {
		m.log.Info("persisted token expired, starting anonymous")
		if err := m.store.Clear(); err != nil {
			m.log.WithError(err).Warn("clearing expired token failed")
		}
		m.setAnonymous()
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := auth.Me(ctx)
	if err != nil {
		// A 401 has already torn the token down via OnUnauthorized; any
		// other failure keeps the persisted token for the next start.
		m.log.WithError(err).Info("profile fetch failed, starting anonymous")
		m.setAnonymous()
		return nil
	}

	m.mu.Lock()
	m.status = Authenticated
	m.user = user
	m.mu.Unlock()
	m.log.WithField("user_id", user.ID).Info("session restored")
	return nil
}

// Login authenticates, persists the fresh token, and populates the profile.
func (m *Manager) Login(ctx context.Context, auth AuthAPI, email, password string) (*api.User, error) {
	result, err := auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return m.establish(result)
}

// Register creates an account and opens a session with the returned token.
func (m *Manager) Register(ctx context.Context, auth AuthAPI, name, email, password string) (*api.User, error) {
	result, err := auth.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return m.establish(result)
}

func (m *Manager) establish(result *api.AuthResult) (*api.User, error) {
	if result.Token == "" {
		return nil, fmt.Errorf("backend returned no session token")
	}
	if err := m.store.Save(result.Token); err != nil {
		return nil, fmt.Errorf("persist session token: %w", err)
	}

	m.mu.Lock()
	m.status = Authenticated
	m.token = result.Token
	user := result.User
	m.user = &user
	m.mu.Unlock()

	m.log.WithField("user_id", result.User.ID).Info("session established")
	u := result.User
	return &u, nil
}

// UpdateProfile pushes partial profile changes and refreshes the local copy.
func (m *Manager) UpdateProfile(ctx context.Context, auth AuthAPI, req api.UpdateProfileRequest) (*api.User, error) {
	if m.Status() != Authenticated {
		return nil, fmt.Errorf("not signed in")
	}
	user, err := auth.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	u := *user
	return &u, nil
}

// Logout is the explicit session teardown: clears the persisted token and
// resets to anonymous.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.setAnonymous()
	m.log.Info("signed out")
	return err
}

// OnUnauthorized is the 401 hook registered with the HTTP client: it clears
// the stored token and flips the session to anonymous. It is idempotent, so
// concurrent 401s clear the token once in effect.
func (m *Manager) OnUnauthorized() {
	m.mu.Lock()
	if m.status == Anonymous && m.token == "" {
		m.mu.Unlock()
		return
	}
	m.status = Anonymous
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Warn("clearing token after 401 failed")
		return
	}
	m.log.Info("session invalidated by backend")
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.status = Anonymous
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// tokenExpired reports whether token is a JWT whose exp claim has elapsed.
// The signature is not verified here; the backend stays authoritative, this
// only skips a doomed network call. Opaque tokens are never treated as
// expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
