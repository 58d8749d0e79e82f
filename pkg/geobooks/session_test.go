package geobooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// identityServer fakes the identity endpoints. restoreUser controls what
// GET /auth/me resolves to; nil means no ambient session.
type identityServer struct {
	mu           sync.Mutex
	restoreUser  *Identity
	restoreDelay time.Duration
	calls        map[string]int
}

func newIdentityServer(restoreUser *Identity) (*identityServer, *httptest.Server) {
	s := &identityServer{restoreUser: restoreUser, calls: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		user := s.restoreUser
		delay := s.restoreDelay
		s.mu.Unlock()

		switch r.URL.Path {
		case "/auth/me":
			time.Sleep(delay)
			if user == nil {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing session"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]*Identity{"user": user})
		case "/auth/login", "/auth/register":
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password == "wrong" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]*Identity{
				"user": {UID: "uid-" + req.Email, Email: req.Email},
			})
		case "/auth/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return s, srv
}

func (s *identityServer) callCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func waitForState(t *testing.T, p *SessionProvider, ok func(SessionState) bool) SessionState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := p.State(); ok(state) {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state never reached, last: %+v", p.State())
	return SessionState{}
}

func TestSessionProvider_StartsLoading(t *testing.T) {
	_, srv := newIdentityServer(nil)
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()

	// The constructor publishes loading immediately; restore resolves later.
	state := p.State()
	if state.User != nil {
		t.Fatalf("user set before restore: %+v", state.User)
	}

	state = waitForState(t, p, func(s SessionState) bool { return !s.Loading })
	if state.User != nil {
		t.Fatalf("no ambient session, but user restored: %+v", state.User)
	}
}

func TestSessionProvider_RestoresAmbientSession(t *testing.T) {
	_, srv := newIdentityServer(&Identity{UID: "uid-1", Email: "alice@example.com"})
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()

	state := waitForState(t, p, func(s SessionState) bool { return !s.Loading })
	if state.User == nil || state.User.Email != "alice@example.com" {
		t.Fatalf("ambient session not restored: %+v", state.User)
	}
}

func TestSessionProvider_SubscribeDeliversCurrentState(t *testing.T) {
	_, srv := newIdentityServer(nil)
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()
	waitForState(t, p, func(s SessionState) bool { return !s.Loading })

	got := make(chan SessionState, 1)
	unsubscribe := p.Subscribe(func(s SessionState) {
		select {
		case got <- s:
		default:
		}
	})
	defer unsubscribe()

	select {
	case state := <-got:
		if state.Loading {
			t.Fatalf("immediate delivery still loading: %+v", state)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscription not fired with current state")
	}
}

func TestSessionProvider_SignInPublishesChange(t *testing.T) {
	_, srv := newIdentityServer(nil)
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()
	waitForState(t, p, func(s SessionState) bool { return !s.Loading })

	identity, err := p.SignIn(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	state := waitForState(t, p, func(s SessionState) bool { return s.User != nil && !s.Loading })
	if state.User.Email != "alice@example.com" {
		t.Fatalf("published user mismatch: %+v", state.User)
	}
}

func TestSessionProvider_SignInFailureClearsUser(t *testing.T) {
	_, srv := newIdentityServer(nil)
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()
	waitForState(t, p, func(s SessionState) bool { return !s.Loading })

	if _, err := p.SignIn(context.Background(), "alice@example.com", "wrong"); err == nil {
		t.Fatalf("expected error for bad credentials")
	}
	state := waitForState(t, p, func(s SessionState) bool { return !s.Loading })
	if state.User != nil {
		t.Fatalf("user set after failed sign-in: %+v", state.User)
	}
}

func TestSessionProvider_ShortPasswordNeverReachesNetwork(t *testing.T) {
	calls, srv := newIdentityServer(nil)
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()
	waitForState(t, p, func(s SessionState) bool { return !s.Loading })

	_, err := p.SignUp(context.Background(), "alice@example.com", "short")
	fe, ok := IsFormError(err)
	if !ok {
		t.Fatalf("expected form error, got %v", err)
	}
	if _, bad := fe.Fields["password"]; !bad {
		t.Fatalf("expected password field error, got %+v", fe.Fields)
	}
	if n := calls.callCount("/auth/register"); n != 0 {
		t.Fatalf("short password reached the network (%d calls)", n)
	}
}

func TestSessionProvider_SignInWinsOverSlowRestore(t *testing.T) {
	srv, httpSrv := newIdentityServer(nil)
	srv.restoreDelay = 200 * time.Millisecond
	defer httpSrv.Close()

	p := NewSessionProvider(context.Background(), New(httpSrv.URL))
	defer p.Close()

	// Sign in while the ambient restore is still in flight.
	if _, err := p.SignIn(context.Background(), "alice@example.com", "pass123"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	waitForState(t, p, func(s SessionState) bool { return s.User != nil && !s.Loading })

	// Let the stale restore resolve; its "no session" result must not
	// overwrite the fresher sign-in.
	time.Sleep(300 * time.Millisecond)
	state := p.State()
	if state.User == nil || state.User.Email != "alice@example.com" {
		t.Fatalf("stale restore clobbered the session: %+v", state)
	}
}

func TestSessionProvider_SignOutClearsSession(t *testing.T) {
	_, srv := newIdentityServer(&Identity{UID: "uid-1", Email: "alice@example.com"})
	defer srv.Close()

	p := NewSessionProvider(context.Background(), New(srv.URL))
	defer p.Close()
	waitForState(t, p, func(s SessionState) bool { return s.User != nil })

	if err := p.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	state := waitForState(t, p, func(s SessionState) bool { return s.User == nil && !s.Loading })
	if state.User != nil {
		t.Fatalf("session not cleared")
	}
}
