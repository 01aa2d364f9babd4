package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"commerce-admin-console/client/internal/session/domain"
)

type memStore struct {
	mu   sync.Mutex
	sess *domain.Session
	err  error
}

func (s *memStore) Load(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sess, nil
}

func (s *memStore) Save(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sess = sess
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

type stubTransport struct {
	mu    sync.Mutex
	calls []string
	post  func(path string, body, out any) error
}

func (t *stubTransport) Post(ctx context.Context, path string, body, out any) error {
	t.mu.Lock()
	t.calls = append(t.calls, path)
	t.mu.Unlock()
	if t.post == nil {
		return nil
	}
	return t.post(path, body, out)
}

func (t *stubTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

type recordingPrefs struct {
	done   chan struct{}
	layout string
	scheme string
	theme  string
}

func (p *recordingPrefs) SetLayout(v string) { p.layout = v }
func (p *recordingPrefs) SetScheme(v string) { p.scheme = v }
func (p *recordingPrefs) SetTheme(v string) {
	p.theme = v
	close(p.done)
}

// unexpiredToken mints a token with a future exp claim.
func unexpiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return token
}

func TestSignIn_EstablishesSession(t *testing.T) {
	st := &memStore{}
	tr := &stubTransport{post: func(path string, body, out any) error {
		if path != "/api/auth/signin" {
			t.Fatalf("path = %q", path)
		}
		resp := out.(*signInResponse)
		resp.AccessToken = "T1"
		resp.User.Data = &domain.Identity{UserID: "u1", CompanyID: "c1"}
		return nil
	}}
	m := NewManager(tr, st, nil, nil)

	ident, err := m.SignIn(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if ident.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", ident.UserID)
	}
	if m.AccessToken() != "T1" {
		t.Errorf("AccessToken = %q, want T1", m.AccessToken())
	}
	if st.sess == nil || st.sess.AccessToken != "T1" {
		t.Error("session not persisted")
	}

	// Subsequent CheckSession must short-circuit on the flag: no network call.
	before := tr.callCount()
	if !m.CheckSession(context.Background()) {
		t.Error("CheckSession after sign-in should be true")
	}
	if tr.callCount() != before {
		t.Error("CheckSession made a network call despite authenticated flag")
	}
}

func TestSignIn_AlreadyAuthenticated(t *testing.T) {
	tr := &stubTransport{post: func(path string, body, out any) error {
		resp := out.(*signInResponse)
		resp.AccessToken = "T1"
		resp.User.Data = &domain.Identity{UserID: "u1"}
		return nil
	}}
	m := NewManager(tr, &memStore{}, nil, nil)

	if _, err := m.SignIn(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := m.SignIn(context.Background(), "a@b.com", "x"); err != ErrAlreadyAuthenticated {
		t.Errorf("second SignIn: got %v, want ErrAlreadyAuthenticated", err)
	}
}

func TestSignIn_RemoteErrorPropagates(t *testing.T) {
	remoteErr := errors.New("invalid credentials")
	tr := &stubTransport{post: func(path string, body, out any) error { return remoteErr }}
	m := NewManager(tr, &memStore{}, nil, nil)

	if _, err := m.SignIn(context.Background(), "a@b.com", "bad"); !errors.Is(err, remoteErr) {
		t.Errorf("SignIn: got %v, want remote error verbatim", err)
	}
	if m.Authenticated() {
		t.Error("failed sign-in must not set the authenticated flag")
	}
}

func TestSignIn_AppliesPreferences(t *testing.T) {
	prefs := &recordingPrefs{done: make(chan struct{})}
	tr := &stubTransport{post: func(path string, body, out any) error {
		resp := out.(*signInResponse)
		resp.AccessToken = "T1"
		resp.User.Data = &domain.Identity{
			UserID:   "u1",
			Settings: domain.Settings{Layout: "classic", Scheme: "dark", Theme: "teal"},
		}
		return nil
	}}
	m := NewManager(tr, &memStore{}, prefs, nil)

	if _, err := m.SignIn(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	select {
	case <-prefs.done:
	case <-time.After(time.Second):
		t.Fatal("preference side effects not applied")
	}
	if prefs.layout != "classic" || prefs.scheme != "dark" || prefs.theme != "teal" {
		t.Errorf("prefs = %+v", prefs)
	}
}

func TestCheckSession_NoStoredToken(t *testing.T) {
	tr := &stubTransport{}
	m := NewManager(tr, &memStore{}, nil, nil)

	if m.CheckSession(context.Background()) {
		t.Error("CheckSession with no stored token should be false")
	}
	if tr.callCount() != 0 {
		t.Errorf("network calls = %d, want 0", tr.callCount())
	}
}

func TestCheckSession_ExpiredStoredToken(t *testing.T) {
	st := &memStore{sess: &domain.Session{AccessToken: expiredToken(t)}}
	tr := &stubTransport{}
	m := NewManager(tr, st, nil, nil)

	if m.CheckSession(context.Background()) {
		t.Error("CheckSession with expired token should be false")
	}
	if tr.callCount() != 0 {
		t.Errorf("network calls = %d, want 0", tr.callCount())
	}
}

func TestCheckSession_MalformedStoredToken(t *testing.T) {
	st := &memStore{sess: &domain.Session{AccessToken: "not-a-jwt"}}
	tr := &stubTransport{}
	m := NewManager(tr, st, nil, nil)

	if m.CheckSession(context.Background()) {
		t.Error("CheckSession with malformed token should be false")
	}
	if tr.callCount() != 0 {
		t.Errorf("network calls = %d, want 0", tr.callCount())
	}
}

func TestCheckSession_SilentRefresh(t *testing.T) {
	st := &memStore{sess: &domain.Session{AccessToken: unexpiredToken(t)}}
	tr := &stubTransport{post: func(path string, body, out any) error {
		if path != "/api/auth/refresh-access-token" {
			t.Fatalf("path = %q", path)
		}
		resp := out.(*refreshResponse)
		resp.AccessToken = "T2"
		resp.User = &domain.Identity{UserID: "u1"}
		return nil
	}}
	m := NewManager(tr, st, nil, nil)

	if !m.CheckSession(context.Background()) {
		t.Fatal("CheckSession should succeed via silent refresh")
	}
	if tr.callCount() != 1 {
		t.Errorf("network calls = %d, want exactly 1", tr.callCount())
	}
	if m.AccessToken() != "T2" {
		t.Errorf("AccessToken = %q, want rotated token T2", m.AccessToken())
	}
	if !m.Authenticated() {
		t.Error("flag should be set after successful refresh")
	}
}

func TestCheckSession_RefreshFailureIsFalseNotError(t *testing.T) {
	st := &memStore{sess: &domain.Session{AccessToken: unexpiredToken(t)}}
	tr := &stubTransport{post: func(path string, body, out any) error {
		return errors.New("network down")
	}}
	m := NewManager(tr, st, nil, nil)

	if m.CheckSession(context.Background()) {
		t.Error("CheckSession should degrade to false on refresh failure")
	}
	if m.Authenticated() {
		t.Error("flag must stay down after failed refresh")
	}
}

func TestSignOut_ThenCheckSessionFalse(t *testing.T) {
	st := &memStore{}
	tr := &stubTransport{post: func(path string, body, out any) error {
		if resp, ok := out.(*signInResponse); ok {
			resp.AccessToken = unexpiredToken(t)
			resp.User.Data = &domain.Identity{UserID: "u1"}
		}
		return nil
	}}
	m := NewManager(tr, st, nil, nil)

	if _, err := m.SignIn(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if st.sess != nil {
		t.Error("persisted session not wiped")
	}
	if m.CheckSession(context.Background()) {
		t.Error("CheckSession after SignOut should be false")
	}
	if m.AccessToken() != "" {
		t.Errorf("AccessToken = %q, want empty after SignOut", m.AccessToken())
	}
}

func TestForgotPassword_Paths(t *testing.T) {
	var gotPath string
	var gotBody any
	tr := &stubTransport{post: func(path string, body, out any) error {
		gotPath, gotBody = path, body
		return nil
	}}
	m := NewManager(tr, &memStore{}, nil, nil)

	if err := m.ForgotPassword(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if gotPath != "/api/auth/recover" {
		t.Errorf("path = %q", gotPath)
	}
	if body := gotBody.(map[string]string); body["email"] != "a@b.com" {
		t.Errorf("body = %v", body)
	}

	if err := m.ResetPassword(context.Background(), "tok1", "new-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if gotPath != "/api/auth/change-password/tok1" {
		t.Errorf("path = %q", gotPath)
	}

	if err := m.ValidateResetToken(context.Background(), "tok1"); err != nil {
		t.Fatalf("ValidateResetToken: %v", err)
	}
	if gotPath != "/api/auth/reset/tok1" {
		t.Errorf("path = %q", gotPath)
	}
}
