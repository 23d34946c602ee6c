// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorLogger renders server-error pages with a short reference ID and logs
// the underlying error against the same ID, so a user report like
// "ref 3f2a9c41" can be matched to a log line.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// ServerError logs err with a generated reference and renders a 500 page
// carrying that reference. The error detail itself is never shown to the
// user.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ref := uuid.New().String()[:8]

	e.log.Error(msg,
		zap.String("error_ref", ref),
		zap.String("path", r.URL.Path),
		zap.Error(err))

	name, signedIn := userCtx(r)
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page", pageData{
		Title:      "Something went wrong",
		SiteName:   "OpsDeck",
		IsLoggedIn: signedIn,
		UserName:   name,
		Message:    "Something went wrong on our side. If this keeps happening, contact support.",
		BackURL:    "/",
		Ref:        ref,
	})
}
