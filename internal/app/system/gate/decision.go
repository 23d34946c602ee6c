// internal/app/system/gate/decision.go
package gate

// Reason explains a redirect decision. Reasons feed logs only; no branch
// anywhere may depend on them.
type Reason string

const (
	ReasonUnauthenticated      Reason = "unauthenticated"
	ReasonEmailUnverified      Reason = "email_unverified"
	ReasonOnboardingIncomplete Reason = "onboarding_incomplete"
	ReasonAlreadyAuthenticated Reason = "already_authenticated"
	ReasonNoBusinessSelected   Reason = "no_business_selected"
	ReasonNoLocationSelected   Reason = "no_location_selected"
)

// Decision is the single outcome the engine produces for a request:
// either pass the request through, or redirect it to one target.
type Decision struct {
	Target string // empty means allow
	Reason Reason // diagnostic only
	Rule   string // name of the rule that fired, for logs and tests
}

// Allowed reports whether the request passes through unmodified.
func (d Decision) Allowed() bool { return d.Target == "" }

func allow(rule string) Decision {
	return Decision{Rule: rule}
}

func redirect(rule, target string, reason Reason) Decision {
	return Decision{Target: target, Reason: reason, Rule: rule}
}

// Input is everything the engine may consult. It is assembled once per
// request; the engine itself holds no state and reads nothing else.
type Input struct {
	Path          string
	Category      RouteCategory
	Authenticated bool
	State         OnboardingState
	Selection     Selection
}

// rule is one (predicate, outcome) pair. Rules are evaluated strictly in
// slice order and the first match wins, so each rule's predicate may assume
// every earlier rule did not match.
type rule struct {
	name  string
	apply func(in Input, t Targets) (Decision, bool)
}

// rules encodes the onboarding priority lattice:
//
//	authentication > email verification > onboarding completeness >
//	auth-route exclusivity > business selection > location selection
//
// Every redirect rule excludes the case where the request is already headed
// to that rule's own target; that exclusion is what makes redirect loops
// impossible.
var rules = []rule{
	{"public_bypass", func(in Input, t Targets) (Decision, bool) {
		if in.Category == CategoryPublic || in.Category == CategoryAPIAuthPrefix {
			return allow("public_bypass"), true
		}
		return Decision{}, false
	}},
	{"visitor_auth_route", func(in Input, t Targets) (Decision, bool) {
		if !in.Authenticated && in.Category == CategoryAuthOnly {
			return allow("visitor_auth_route"), true
		}
		return Decision{}, false
	}},
	{"unauthenticated", func(in Input, t Targets) (Decision, bool) {
		if !in.Authenticated {
			return redirect("unauthenticated", t.Login, ReasonUnauthenticated), true
		}
		return Decision{}, false
	}},
	{"email_unverified", func(in Input, t Targets) (Decision, bool) {
		if in.State.EmailVerified == nil && in.Path != t.VerifyEmail {
			return redirect("email_unverified", t.VerifyEmail, ReasonEmailUnverified), true
		}
		return Decision{}, false
	}},
	{"special_bypass", func(in Input, t Targets) (Decision, bool) {
		if in.Category == CategorySpecial {
			return allow("special_bypass"), true
		}
		return Decision{}, false
	}},
	{"onboarding_incomplete", func(in Input, t Targets) (Decision, bool) {
		if (!in.State.BusinessComplete || !in.State.LocationComplete) && in.Path != t.RegisterBusiness {
			return redirect("onboarding_incomplete", t.RegisterBusiness, ReasonOnboardingIncomplete), true
		}
		return Decision{}, false
	}},
	{"already_authenticated", func(in Input, t Targets) (Decision, bool) {
		if in.Category == CategoryAuthOnly {
			return redirect("already_authenticated", t.Home, ReasonAlreadyAuthenticated), true
		}
		return Decision{}, false
	}},
	{"no_business_selected", func(in Input, t Targets) (Decision, bool) {
		if !in.Selection.HasBusiness && in.Path != t.SelectBusiness {
			return redirect("no_business_selected", t.SelectBusiness, ReasonNoBusinessSelected), true
		}
		return Decision{}, false
	}},
	{"no_location_selected", func(in Input, t Targets) (Decision, bool) {
		if in.Selection.HasBusiness && !in.Selection.HasLocationContext() && in.Path != t.SelectLocation {
			return redirect("no_location_selected", t.SelectLocation, ReasonNoLocationSelected), true
		}
		return Decision{}, false
	}},
}

// Decide runs the rule list and returns exactly one decision. It is a pure
// function of its arguments: same input, same decision, every time.
func Decide(in Input, t Targets) Decision {
	for _, r := range rules {
		if d, ok := r.apply(in, t); ok {
			return d
		}
	}
	return allow("default")
}
