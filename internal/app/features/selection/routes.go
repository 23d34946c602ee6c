// internal/app/features/selection/routes.go
package selection

import (
	"github.com/go-chi/chi/v5"
	"github.com/opsdeck/opsdeck/internal/app/system/ratelimit"
)

// BusinessRoutes serves /select-business. The POST writes cookies, so it
// sits behind a per-IP limiter.
func BusinessRoutes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSelectBusiness)
	r.With(limiter.Middleware).Post("/", h.HandleSelectBusiness)
	return r
}

// LocationRoutes serves /select-location.
func LocationRoutes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSelectLocation)
	r.With(limiter.Middleware).Post("/", h.HandleSelectLocation)
	return r
}
