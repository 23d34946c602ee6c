package gate_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/opsdeck/opsdeck/internal/app/system/gate"
	"go.uber.org/zap"
)

type stubResolver struct {
	valid bool
	calls int
}

func (s *stubResolver) HasValidSession(r *http.Request) bool {
	s.calls++
	return s.valid
}

func newTestGatekeeper(t *testing.T, resolver gate.SessionResolver) *gate.Gatekeeper {
	t.Helper()
	g, err := gate.New(gate.Config{
		Routes:  testRouteTable(),
		Targets: testTargets(),
	}, resolver, zap.NewNop())
	if err != nil {
		t.Fatalf("gate.New: %v", err)
	}
	return g
}

func serveThrough(g *gate.Gatekeeper, r *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	g.Middleware(next).ServeHTTP(rec, r)
	return rec, reached
}

func TestMiddlewareRedirectsVisitor(t *testing.T) {
	g := newTestGatekeeper(t, &stubResolver{valid: false})

	rec, reached := serveThrough(g, httptest.NewRequest("GET", "/dashboard", nil))

	if reached {
		t.Fatal("protected handler ran for an unauthenticated request")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestMiddlewareHTMXRedirect(t *testing.T) {
	g := newTestGatekeeper(t, &stubResolver{valid: false})

	r := httptest.NewRequest("GET", "/dashboard", nil)
	r.Header.Set("HX-Request", "true")
	rec, reached := serveThrough(g, r)

	if reached {
		t.Fatal("protected handler ran for an unauthenticated request")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if target := rec.Header().Get("HX-Redirect"); target != "/login" {
		t.Errorf("HX-Redirect = %q, want /login", target)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("unexpected Location header %q on HTMX response", loc)
	}
}

func TestMiddlewareSkipsSessionWorkOnPublicRoutes(t *testing.T) {
	resolver := &stubResolver{valid: false}
	g := newTestGatekeeper(t, resolver)

	for _, path := range []string{"/", "/health", "/invite/abc", "/api/auth/login"} {
		rec, reached := serveThrough(g, httptest.NewRequest("GET", path, nil))
		if !reached {
			t.Errorf("%s: public request did not reach the handler (status %d)", path, rec.Code)
		}
	}
	if resolver.calls != 0 {
		t.Errorf("session resolver was consulted %d times for public routes", resolver.calls)
	}
}

func TestMiddlewarePassesFinishedUser(t *testing.T) {
	g := newTestGatekeeper(t, &stubResolver{valid: true})

	r := httptest.NewRequest("GET", "/dashboard", nil)
	claims := `{"emailVerified":"2026-08-01T10:30:00Z","businessComplete":true,"locationComplete":true}`
	r.AddCookie(&http.Cookie{Name: gate.ClaimsCookie, Value: url.QueryEscape(claims)})
	r.AddCookie(&http.Cookie{Name: gate.BusinessCookie, Value: "biz-1"})
	r.AddCookie(&http.Cookie{Name: gate.LocationCookie, Value: "loc-1"})

	rec, reached := serveThrough(g, r)
	if !reached {
		t.Fatalf("finished user was blocked (status %d, Location %q)",
			rec.Code, rec.Header().Get("Location"))
	}
}

func TestMiddlewareFunnelsUnverifiedSession(t *testing.T) {
	g := newTestGatekeeper(t, &stubResolver{valid: true})

	// Valid session but no claims cookie at all: treated as unverified.
	rec, reached := serveThrough(g, httptest.NewRequest("GET", "/dashboard", nil))

	if reached {
		t.Fatal("unverified session reached a protected handler")
	}
	if loc := rec.Header().Get("Location"); loc != "/verify-email" {
		t.Errorf("Location = %q, want /verify-email", loc)
	}
}

func TestNewRejectsBadTargets(t *testing.T) {
	bad := []gate.Targets{
		{}, // all empty
		{Login: "login", VerifyEmail: "/verify-email", RegisterBusiness: "/register-business",
			SelectBusiness: "/select-business", SelectLocation: "/select-location", Home: "/dashboard"},
	}

	for _, targets := range bad {
		_, err := gate.New(gate.Config{Routes: testRouteTable(), Targets: targets},
			&stubResolver{}, zap.NewNop())
		if err == nil {
			t.Errorf("targets %+v: expected a configuration error", targets)
		}
	}
}

func TestNewRejectsBadRouteTable(t *testing.T) {
	_, err := gate.New(gate.Config{
		Routes:  gate.RouteTable{Public: []string{"/invite/[token"}},
		Targets: testTargets(),
	}, &stubResolver{}, zap.NewNop())
	if err == nil {
		t.Fatal("expected an error for a malformed route table")
	}
}
