// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/gate"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the default logged-in landing page. By the time a request
// reaches it the gate has already guaranteed a verified, onboarded user
// with a business and location context selected.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type dashboardData struct {
	viewdata.BaseVM
	BusinessID  string
	WarehouseID string
	LocationID  string
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		BaseVM:      viewdata.NewBaseVM(r, "Dashboard"),
		BusinessID:  cookieValue(r, gate.BusinessCookie),
		WarehouseID: cookieValue(r, gate.WarehouseCookie),
		LocationID:  cookieValue(r, gate.LocationCookie),
	}

	templates.Render(w, r, "dashboard", data)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
