// internal/app/features/support/handler.go
package support

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler renders the support page. It is reachable to any verified user,
// even one stuck mid-onboarding, so people can get help without finishing
// the funnel first.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeSupport handles GET /support.
func (h *Handler) ServeSupport(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Support"),
	}

	templates.Render(w, r, "support", data)
}
