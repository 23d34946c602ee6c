// internal/app/features/login/handler.go
package login

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/navigation"
	"github.com/opsdeck/opsdeck/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler renders the sign-in and registration pages. Credential handling
// and session issuance live in the external auth service; this feature is
// presentation only, which is also why the gate classifies these routes as
// auth-only rather than protected.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type loginPageData struct {
	viewdata.BaseVM
	ReturnURL string
}

// ServeLogin handles GET /login.
//
// The gate appends no return parameter itself; page code that sends users
// here may. The value is sanitized so the form never carries an open
// redirect or a loop back into the auth pages.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginPageData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in"),
		ReturnURL: navigation.SafeReturnURL(r, navigation.LoginReturnURL),
	})
}

// ServeRegister handles GET /register.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "register", loginPageData{
		BaseVM: viewdata.NewBaseVM(r, "Create account"),
	})
}
