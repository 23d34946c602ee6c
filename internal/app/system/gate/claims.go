// internal/app/system/gate/claims.go
package gate

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ClaimsCookie is the cookie carrying the onboarding-state claims written
// by the login/registration system. The gate only reads it.
const ClaimsCookie = "authToken"

// OnboardingState is the set of completeness claims the gate consumes.
//
// A zero OnboardingState means "nothing completed": email unverified and
// both registration steps outstanding. Absent or unparsable cookies
// deliberately collapse to the zero value so bad state can never unlock a
// step (fail-closed).
type OnboardingState struct {
	EmailVerified    *time.Time `json:"emailVerified"`
	BusinessComplete bool       `json:"businessComplete"`
	LocationComplete bool       `json:"locationComplete"`
}

// ExtractOnboardingState parses the claims cookie value into a typed state.
//
// The value is a URL-escaped JSON object. Any failure along the way
// (missing cookie, bad escaping, malformed JSON, an unparsable timestamp)
// is logged at Warn and yields the zero state. It never returns an error:
// the gate must always be able to render a decision.
func ExtractOnboardingState(r *http.Request, log *zap.Logger) OnboardingState {
	cookie, err := r.Cookie(ClaimsCookie)
	if err != nil || cookie.Value == "" {
		return OnboardingState{}
	}

	raw := cookie.Value
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}

	var state OnboardingState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		log.Warn("gate: malformed onboarding claims cookie, treating as empty",
			zap.Error(err))
		return OnboardingState{}
	}
	return state
}
