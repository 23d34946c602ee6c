package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type stubVerifier struct {
	ok  bool
	err error
}

func (v stubVerifier) Verify(ctx context.Context, sessionID string) (bool, error) {
	return v.ok, v.err
}

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager("0123456789abcdef0123456789abcdef", "opsdeck_session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// bakeRequest saves a session through the manager and returns a fresh request
// carrying the resulting cookie, the same way a browser would replay it.
func bakeRequest(t *testing.T, sm *SessionManager, mutate func(*sessions.Session)) *http.Request {
	t.Helper()

	seed := httptest.NewRequest("GET", "/", nil)
	sess, err := sm.GetSession(seed)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	mutate(sess)

	rec := httptest.NewRecorder()
	if err := sess.Save(seed, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	r := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNewSessionManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "opsdeck_session", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected an error for an empty session key")
	}
}

func TestHasValidSession_NoCookie(t *testing.T) {
	sm := newTestManager(t)

	if sm.HasValidSession(httptest.NewRequest("GET", "/dashboard", nil)) {
		t.Error("request without a cookie reported a valid session")
	}
}

func TestHasValidSession_GarbageCookie(t *testing.T) {
	sm := newTestManager(t)

	r := httptest.NewRequest("GET", "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "opsdeck_session", Value: "not-a-real-session"})

	if sm.HasValidSession(r) {
		t.Error("undecodable cookie reported a valid session")
	}
}

func TestHasValidSession_NotAuthenticated(t *testing.T) {
	sm := newTestManager(t)

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = false
	})

	if sm.HasValidSession(r) {
		t.Error("unauthenticated session reported valid")
	}
}

func TestHasValidSession_NoVerifier(t *testing.T) {
	sm := newTestManager(t)

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = true
	})

	if !sm.HasValidSession(r) {
		t.Error("signed authenticated cookie rejected with no verifier installed")
	}
}

func TestHasValidSession_MissingSessionID(t *testing.T) {
	sm := newTestManager(t)
	sm.SetVerifier(stubVerifier{ok: true})

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = true
	})

	if sm.HasValidSession(r) {
		t.Error("verifier installed but no session ID; must resolve to false")
	}
}

func TestHasValidSession_Verifier(t *testing.T) {
	tests := []struct {
		name     string
		verifier stubVerifier
		want     bool
	}{
		{"live record", stubVerifier{ok: true}, true},
		{"revoked record", stubVerifier{ok: false}, false},
		{"store error", stubVerifier{err: errors.New("connection reset")}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sm := newTestManager(t)
			sm.SetVerifier(tc.verifier)

			r := bakeRequest(t, sm, func(s *sessions.Session) {
				s.Values[isAuthKey] = true
				s.Values[sessionIDKey] = "sess-1"
			})

			if got := sm.HasValidSession(r); got != tc.want {
				t.Errorf("HasValidSession = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionID(t *testing.T) {
	sm := newTestManager(t)

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = true
		s.Values[sessionIDKey] = "sess-42"
	})

	if got := sm.SessionID(r); got != "sess-42" {
		t.Errorf("SessionID = %q, want sess-42", got)
	}
	if got := sm.SessionID(httptest.NewRequest("GET", "/", nil)); got != "" {
		t.Errorf("SessionID on a bare request = %q, want empty", got)
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	sm := newTestManager(t)

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = true
	})

	rec := httptest.NewRecorder()
	if err := sm.ClearSession(rec, r); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	setCookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "opsdeck_session=") {
		t.Fatalf("no deletion cookie written: %q", setCookie)
	}
	if !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("deletion cookie does not expire immediately: %q", setCookie)
	}
}

func TestLoadSessionUser(t *testing.T) {
	sm := newTestManager(t)

	r := bakeRequest(t, sm, func(s *sessions.Session) {
		s.Values[isAuthKey] = true
		s.Values[userIDKey] = "u-1"
		s.Values[userNameKey] = "Dana"
		s.Values[userEmailKey] = "dana@example.com"
	})

	var got *SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})
	sm.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatal("no user injected into the request context")
	}
	if got.ID != "u-1" || got.Name != "Dana" || got.Email != "dana@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestLoadSessionUserSkipsVisitors(t *testing.T) {
	sm := newTestManager(t)

	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = CurrentUser(r)
	})
	sm.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if found {
		t.Error("visitor request carried a context user")
	}
}
