// internal/app/bootstrap/gatecfg.go
package bootstrap

import (
	"github.com/opsdeck/opsdeck/internal/app/system/gate"
)

// gateConfig is the static route table and redirect-target configuration
// for the access-control gatekeeper. The gate itself defines no defaults;
// this is the host application's single source of truth for which routes
// are public, which are login-only, and where each onboarding step lives.
func gateConfig() gate.Config {
	return gate.Config{
		Routes: gate.RouteTable{
			Public: []string{
				"/",
				"/health",
				"/terms",
				"/privacy",
				// Invitation and password-reset links carry a token
				// segment; each bracketed segment matches exactly one
				// path segment.
				"/invite/[token]",
				"/reset-password/[token]",
				// Static assets.
				"/static/[file]",
				"/static/[dir]/[file]",
				"/favicon.ico",
			},
			AuthOnly: []string{
				"/login",
				"/register",
			},
			Special: []string{
				"/logout",
				"/support",
			},
			APIAuthPrefix: "/api/auth",
		},
		Targets: gate.Targets{
			Login:            "/login",
			VerifyEmail:      "/verify-email",
			RegisterBusiness: "/register-business",
			SelectBusiness:   "/select-business",
			SelectLocation:   "/select-location",
			Home:             "/dashboard",
		},
	}
}
