// internal/app/features/verifyemail/routes.go
package verifyemail

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeVerifyEmail)
	return r
}
