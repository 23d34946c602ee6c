// internal/app/features/support/routes.go
package support

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSupport)
	return r
}
