// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	// The gate classifies /logout as a special route: it requires a
	// session but stays reachable mid-onboarding.
	r.Get("/", h.ServeLogout)
	return r
}
