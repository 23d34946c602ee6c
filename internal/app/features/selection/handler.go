// internal/app/features/selection/handler.go
package selection

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/gate"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler implements the business/location selection flow. Picking a
// context writes the presence cookies the gatekeeper reads; the gate only
// ever checks that the cookies exist, the values are for page code.
type Handler struct {
	Log    *zap.Logger
	Secure bool // mark selection cookies Secure in production
}

func NewHandler(secure bool, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Secure: secure}
}

type selectPageData struct {
	viewdata.BaseVM
	Error string
}

// ServeSelectBusiness handles GET /select-business.
func (h *Handler) ServeSelectBusiness(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "select_business", selectPageData{
		BaseVM: viewdata.NewBaseVM(r, "Choose a business"),
	})
}

// HandleSelectBusiness handles POST /select-business.
//
// Switching businesses drops any warehouse/location context; the gate will
// walk the user through picking a new one.
func (h *Handler) HandleSelectBusiness(w http.ResponseWriter, r *http.Request) {
	businessID := r.PostFormValue("business_id")
	if businessID == "" {
		w.WriteHeader(http.StatusBadRequest)
		templates.Render(w, r, "select_business", selectPageData{
			BaseVM: viewdata.NewBaseVM(r, "Choose a business"),
			Error:  "Pick a business to continue.",
		})
		return
	}

	h.setCookie(w, gate.BusinessCookie, businessID)
	h.clearCookie(w, gate.WarehouseCookie)
	h.clearCookie(w, gate.LocationCookie)

	h.Log.Info("business selected", zap.String("business_id", businessID))
	http.Redirect(w, r, "/select-location", http.StatusSeeOther)
}

// ServeSelectLocation handles GET /select-location.
func (h *Handler) ServeSelectLocation(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "select_location", selectPageData{
		BaseVM: viewdata.NewBaseVM(r, "Choose a location"),
	})
}

// HandleSelectLocation handles POST /select-location.
//
// The form submits either a location or a warehouse; the two are
// alternative operating modes and one of them is enough to satisfy the
// gate's context requirement.
func (h *Handler) HandleSelectLocation(w http.ResponseWriter, r *http.Request) {
	locationID := r.PostFormValue("location_id")
	warehouseID := r.PostFormValue("warehouse_id")

	switch {
	case locationID != "":
		h.setCookie(w, gate.LocationCookie, locationID)
		h.Log.Info("location selected", zap.String("location_id", locationID))
	case warehouseID != "":
		h.setCookie(w, gate.WarehouseCookie, warehouseID)
		h.Log.Info("warehouse selected", zap.String("warehouse_id", warehouseID))
	default:
		w.WriteHeader(http.StatusBadRequest)
		templates.Render(w, r, "select_location", selectPageData{
			BaseVM: viewdata.NewBaseVM(r, "Choose a location"),
			Error:  "Pick a location or a warehouse to continue.",
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Secure:   h.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
