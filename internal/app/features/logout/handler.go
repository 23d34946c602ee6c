// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	uierrors "github.com/opsdeck/opsdeck/internal/app/features/errors"
	"github.com/opsdeck/opsdeck/internal/app/store/sessions"
	"github.com/opsdeck/opsdeck/internal/app/system/auth"
	"github.com/opsdeck/opsdeck/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler ends a session: the server-side record is revoked first, then
// the cookie is expired, so a copied cookie can't outlive a logout.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Sessions   *sessions.Store
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(sessionMgr *auth.SessionManager, sessStore *sessions.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Sessions:   sessStore,
		ErrLog:     errLog,
	}
}

// ServeLogout handles GET /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID := h.SessionMgr.SessionID(r); sessionID != "" && h.Sessions != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		if err := h.Sessions.Revoke(ctx, sessionID, sessions.RevokedByLogout); err != nil {
			// The cookie still gets cleared; the sweeper will catch the record.
			h.Log.Error("logout: revoke session record", zap.Error(err),
				zap.String("session_id", sessionID))
		}
	}

	if err := h.SessionMgr.ClearSession(w, r); err != nil {
		h.ErrLog.ServerError(w, r, "logout: clear session cookie", err)
		return
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	// Non-HTMX: standard redirect home.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
