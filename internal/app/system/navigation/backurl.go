// Package navigation provides safe return-URL handling for redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// ReturnURLOptions configures SafeReturnURL.
type ReturnURLOptions struct {
	// ExcludedPaths are site paths a return URL may never point at. They
	// prevent a successful sign-in from bouncing the user straight back
	// into the auth or onboarding pages.
	ExcludedPaths []string

	// Fallback is used when no acceptable return URL is found.
	Fallback string
}

// LoginReturnURL is the configuration for the sign-in page: never return
// into an auth page or an onboarding step, land on the dashboard instead.
var LoginReturnURL = ReturnURLOptions{
	ExcludedPaths: []string{
		"/login",
		"/register",
		"/logout",
		"/verify-email",
		"/register-business",
		"/select-business",
		"/select-location",
	},
	Fallback: "/dashboard",
}

// SafeReturnURL extracts and validates a return URL from the request.
//
// It checks the "return" query parameter and form value, rejects anything
// that is not a site-relative path (open-redirect protection), and rejects
// the excluded paths. When nothing acceptable is found it returns the
// fallback.
func SafeReturnURL(r *http.Request, opts ReturnURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" {
		valid := true
		for _, excluded := range opts.ExcludedPaths {
			if ret == excluded || strings.HasPrefix(ret, excluded+"/") {
				valid = false
				break
			}
		}
		if valid {
			return ret
		}
	}

	return opts.Fallback
}
