// internal/app/features/verifyemail/handler.go
package verifyemail

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler renders the "verify your email" holding page. The gate sends
// every signed-in user with an unverified address here; the verification
// link itself is issued and confirmed by the external auth service.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeVerifyEmail handles GET /verify-email.
func (h *Handler) ServeVerifyEmail(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Verify your email"),
	}

	templates.Render(w, r, "verify_email", data)
}
