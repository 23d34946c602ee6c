// internal/app/features/onboarding/handler.go
package onboarding

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler renders the business/location registration page, the single
// funnel step the gate redirects to while either registration flag in the
// onboarding claims is still false. The form posts to the backend API,
// which updates the claims cookie on success.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeRegisterBusiness handles GET /register-business.
func (h *Handler) ServeRegisterBusiness(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Set up your business"),
	}

	templates.Render(w, r, "register_business", data)
}
