// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/opsdeck/opsdeck/internal/app/system/auth"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	SiteName   string
	IsLoggedIn bool
	UserName   string
	Message    string
	BackURL    string
	Ref        string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	name, signedIn := userCtx(r)

	data := pageData{
		Title:      "Access denied",
		SiteName:   "OpsDeck",
		IsLoggedIn: signedIn,
		UserName:   name,
		Message:    "You don't have permission to view this page.",
		BackURL:    "/",
	}

	templates.Render(w, r, "error_page", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	name, signedIn := userCtx(r)

	data := pageData{
		Title:      "Sign in required",
		SiteName:   "OpsDeck",
		IsLoggedIn: signedIn,
		UserName:   name,
		Message:    "Please sign in to continue.",
		BackURL:    "/login",
	}

	templates.Render(w, r, "error_page", data)
}

func userCtx(r *http.Request) (name string, signedIn bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return u.Name, true
}
