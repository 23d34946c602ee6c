// internal/app/system/gate/gate.go
//
// Package gate is the request-time access-control gatekeeper. Every
// navigation passes through it exactly once: the path is classified against
// a static route table, session and onboarding state are reconstructed from
// cookies, and an ordered rule list produces exactly one decision: let the
// request through, or redirect it to the next unmet onboarding step.
package gate

import (
	"net/http"

	"go.uber.org/zap"
)

// SessionResolver answers whether the request carries a valid authenticated
// session. Implementations must swallow their own failures: if the
// underlying check errors, the answer is simply false.
type SessionResolver interface {
	HasValidSession(r *http.Request) bool
}

// Gatekeeper is the middleware. It is built once at startup and holds no
// mutable per-request state, so a single instance serves all traffic.
type Gatekeeper struct {
	classifier *Classifier
	targets    Targets
	sessions   SessionResolver
	log        *zap.Logger
}

// New compiles the route table and validates the redirect targets.
// Configuration errors are returned (and should abort startup); nothing is
// tolerated lazily at request time.
func New(cfg Config, sessions SessionResolver, logger *zap.Logger) (*Gatekeeper, error) {
	if err := cfg.Targets.Validate(); err != nil {
		return nil, err
	}
	classifier, err := NewClassifier(cfg.Routes)
	if err != nil {
		return nil, err
	}
	return &Gatekeeper{
		classifier: classifier,
		targets:    cfg.Targets,
		sessions:   sessions,
		log:        logger,
	}, nil
}

// Middleware intercepts every request. Public and auth-API routes are
// short-circuited before any session work so they never pay for (or depend
// on) session resolution; everything else goes through the decision engine.
func (g *Gatekeeper) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		category := g.classifier.Classify(path)
		if category == CategoryPublic || category == CategoryAPIAuthPrefix {
			next.ServeHTTP(w, r)
			return
		}

		in := Input{
			Path:          path,
			Category:      category,
			Authenticated: g.sessions.HasValidSession(r),
			State:         ExtractOnboardingState(r, g.log),
			Selection:     ReadSelection(r),
		}

		decision := Decide(in, g.targets)
		if decision.Allowed() {
			next.ServeHTTP(w, r)
			return
		}

		g.log.Info("gate: redirecting",
			zap.String("path", path),
			zap.String("category", category.String()),
			zap.String("rule", decision.Rule),
			zap.String("reason", string(decision.Reason)),
			zap.String("target", decision.Target))

		// HTMX partial requests need a client-side navigation header;
		// a plain 303 would get swapped into the page fragment.
		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", decision.Target)
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, decision.Target, http.StatusSeeOther)
	})
}
