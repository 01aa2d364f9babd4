// Package service implements the session manager: sign-in, silent token
// refresh, the fail-closed session gate, and sign-out.
package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/security"
	"commerce-admin-console/client/internal/session/domain"
	"commerce-admin-console/client/internal/session/store"
)

// ErrAlreadyAuthenticated is returned by SignIn when a session is already
// established this process lifetime. A user-facing guard, not a security boundary.
var ErrAlreadyAuthenticated = errors.New("already signed in")

// Transport is the minimal API client needed by the manager.
type Transport interface {
	Post(ctx context.Context, path string, body, out any) error
}

// PreferenceSink receives the presentation preferences carried on the signed-in
// identity. Calls are fire-and-forget: they must not block or fail sign-in.
type PreferenceSink interface {
	SetLayout(layout string)
	SetScheme(scheme string)
	SetTheme(theme string)
}

// NopPreferences discards all preference updates.
type NopPreferences struct{}

func (NopPreferences) SetLayout(string) {}
func (NopPreferences) SetScheme(string) {}
func (NopPreferences) SetTheme(string)  {}

// Manager owns the client's authentication state. It is the single writer of
// the persisted session; everything else only reads it (via AccessToken or
// Identity). Safe for concurrent use.
type Manager struct {
	transport Transport
	store     store.Store
	prefs     PreferenceSink
	log       *zap.Logger

	mu            sync.Mutex
	authenticated bool            // volatile; never persisted
	current       *domain.Session // in-memory mirror of the persisted session
	restored      bool            // persisted session loaded at least once
}

// NewManager returns a Manager. prefs may be nil (preferences discarded);
// log may be nil.
func NewManager(transport Transport, st store.Store, prefs PreferenceSink, log *zap.Logger) *Manager {
	if prefs == nil {
		prefs = NopPreferences{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{transport: transport, store: st, prefs: prefs, log: log}
}

// signInResponse is the sign-in endpoint's envelope.
type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		Data *domain.Identity `json:"data"`
	} `json:"user"`
}

// refreshResponse is the token-refresh endpoint's envelope. Unlike sign-in,
// the identity is not nested under "data".
type refreshResponse struct {
	AccessToken string           `json:"accessToken"`
	User        *domain.Identity `json:"user"`
}

// SignIn authenticates with email and password. On success the token and
// identity are persisted, the authenticated flag is set, and the identity's
// presentation preferences are applied in the background. Remote errors are
// returned verbatim; there is no retry.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.authenticated {
		return nil, ErrAlreadyAuthenticated
	}

	var resp signInResponse
	body := map[string]string{"email": email, "password": password}
	if err := m.transport.Post(ctx, "/api/auth/signin", body, &resp); err != nil {
		return nil, err
	}

	m.establishLocked(ctx, resp.AccessToken, resp.User.Data)

	settings := domain.Settings{}
	if resp.User.Data != nil {
		settings = resp.User.Data.Settings
	}
	go func() {
		m.prefs.SetLayout(settings.Layout)
		m.prefs.SetScheme(settings.Scheme)
		m.prefs.SetTheme(settings.Theme)
	}()

	return resp.User.Data, nil
}

// SignInWithStoredToken attempts silent re-authentication with the persisted
// token. It never fails: any error, local or remote, resolves to false.
// Preference side effects are not applied on this path.
func (m *Manager) SignInWithStoredToken(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

// CheckSession is the gate called before any authenticated action. Decision
// order, short-circuiting: already authenticated; no stored token; stored
// token expired; otherwise silent refresh. Never fails, never makes a network
// call unless it reaches the refresh rule.
func (m *Manager) CheckSession(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.authenticated {
		return true
	}
	sess := m.loadLocked(ctx)
	if sess == nil || sess.AccessToken == "" {
		return false
	}
	if security.IsExpired(sess.AccessToken) {
		return false
	}
	return m.refreshLocked(ctx)
}

// SignOut resets the authenticated flag and wipes the whole persisted store.
// Local-only; no remote revocation is attempted.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.authenticated = false
	m.current = nil
	m.restored = true
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	return nil
}

// ForgotPassword requests a password-recovery mail for the given address.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	return m.transport.Post(ctx, "/api/auth/recover", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using a recovery token.
func (m *Manager) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return m.transport.Post(ctx, "/api/auth/change-password/"+token, body, nil)
}

// ValidateResetToken checks that a recovery token is still usable.
func (m *Manager) ValidateResetToken(ctx context.Context, token string) error {
	return m.transport.Post(ctx, "/api/auth/reset/"+token, map[string]string{"token": token}, nil)
}

// AccessToken returns the current bearer token, or "" when none is stored.
// Implements the transport's TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.loadLocked(context.Background())
	if sess == nil {
		return ""
	}
	return sess.AccessToken
}

// Identity returns the stored identity, or nil when signed out.
func (m *Manager) Identity() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.loadLocked(context.Background())
	if sess == nil {
		return nil
	}
	return sess.User
}

// Authenticated reports whether a sign-in or refresh succeeded this process
// lifetime. A false result with a stored token only means "not yet re-validated".
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// loadLocked returns the in-memory session, restoring it from the store on
// first use. Store read failures degrade to "no session" (fail closed).
func (m *Manager) loadLocked(ctx context.Context) *domain.Session {
	if m.restored {
		return m.current
	}
	sess, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn("session restore failed", zap.Error(err))
		sess = nil
	}
	m.current = sess
	m.restored = true
	return m.current
}

// refreshLocked performs the silent token refresh. Collapses every failure
// to false.
func (m *Manager) refreshLocked(ctx context.Context) bool {
	sess := m.loadLocked(ctx)
	if sess == nil || sess.AccessToken == "" {
		return false
	}
	var resp refreshResponse
	body := map[string]string{"accessToken": sess.AccessToken}
	if err := m.transport.Post(ctx, "/api/auth/refresh-access-token", body, &resp); err != nil {
		m.log.Debug("silent refresh failed", zap.Error(err))
		return false
	}
	m.establishLocked(ctx, resp.AccessToken, resp.User)
	return true
}

// establishLocked records a validated token + identity in memory and in the
// store. Persistence failure is logged, not fatal: the session stays valid
// for this process even if it will not survive a restart.
func (m *Manager) establishLocked(ctx context.Context, token string, user *domain.Identity) {
	m.current = &domain.Session{AccessToken: token, User: user}
	m.restored = true
	m.authenticated = true
	if err := m.store.Save(ctx, m.current); err != nil {
		m.log.Warn("session persist failed", zap.Error(err))
	}
}
