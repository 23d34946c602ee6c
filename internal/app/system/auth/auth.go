// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/opsdeck/opsdeck/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey    = "is_authenticated"
	sessionIDKey = "session_id"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
)

// SessionUser is what we cache in the session cookie & inject into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionVerifier confirms that a server-side session record is still live
// (not revoked, not expired). The Mongo-backed store in
// internal/app/store/sessions implements it.
type SessionVerifier interface {
	Verify(ctx context.Context, sessionID string) (bool, error)
}

// SessionManager owns the signed session cookie and answers the one
// question the gatekeeper asks: does this request carry a valid session?
type SessionManager struct {
	store    *sessions.CookieStore
	name     string
	verifier SessionVerifier
	log      *zap.Logger
}

// NewSessionManager builds the cookie store. The `secure` flag controls
// whether cookies are marked Secure and which SameSite mode is used:
// production wants Secure + SameSite=None, local dev over http wants Lax.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetVerifier installs the server-side session check. Without a verifier
// the cookie signature alone decides validity.
func (sm *SessionManager) SetVerifier(v SessionVerifier) { sm.verifier = v }

// Store exposes the underlying cookie store (logout needs its options to
// build a matching deletion cookie).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// GetSession decodes the request's session, returning a fresh one if absent.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the user into context if they are logged in.
// Decode failures are treated as "not logged in"; the request continues.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userNameKey),
				Email: getString(sess, userEmailKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// HasValidSession implements the gatekeeper's session resolver.
//
// Any failure along the way (cookie decode error, missing session record,
// verifier error) resolves to false. The gate must always get an answer,
// and "no session" is the safe one.
func (sm *SessionManager) HasValidSession(r *http.Request) bool {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sm.log.Warn("session decode failed", zap.Error(err))
		return false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return false
	}
	if sm.verifier == nil {
		return true
	}

	sessionID := getString(sess, sessionIDKey)
	if sessionID == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ok, err := sm.verifier.Verify(ctx, sessionID)
	if err != nil {
		sm.log.Warn("session verification failed, treating as no session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return false
	}
	return ok
}

// SessionID returns the server-side session record ID stored in the cookie,
// or "" if there is none.
func (sm *SessionManager) SessionID(r *http.Request) string {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return ""
	}
	return getString(sess, sessionIDKey)
}

// ClearSession writes a deletion cookie matching the store's options.
func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		// Decode failed; still overwrite with a deletion cookie.
		sm.log.Warn("session decode failed during clear", zap.Error(err))
	}
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// WithTestUser injects a SessionUser into the request context. Test hook;
// mirrors what LoadSessionUser does in production.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
