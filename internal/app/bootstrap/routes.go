// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	dashboardfeature "github.com/opsdeck/opsdeck/internal/app/features/dashboard"
	errorsfeature "github.com/opsdeck/opsdeck/internal/app/features/errors"
	healthfeature "github.com/opsdeck/opsdeck/internal/app/features/health"
	homefeature "github.com/opsdeck/opsdeck/internal/app/features/home"
	loginfeature "github.com/opsdeck/opsdeck/internal/app/features/login"
	logoutfeature "github.com/opsdeck/opsdeck/internal/app/features/logout"
	onboardingfeature "github.com/opsdeck/opsdeck/internal/app/features/onboarding"
	selectionfeature "github.com/opsdeck/opsdeck/internal/app/features/selection"
	supportfeature "github.com/opsdeck/opsdeck/internal/app/features/support"
	verifyemailfeature "github.com/opsdeck/opsdeck/internal/app/features/verifyemail"
	sessionstore "github.com/opsdeck/opsdeck/internal/app/store/sessions"
	"github.com/opsdeck/opsdeck/internal/app/system/auth"
	"github.com/opsdeck/opsdeck/internal/app/system/gate"
	"github.com/opsdeck/opsdeck/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. OpsDeck wires two global middlewares in
// front of every feature router:
//
//  1. sessionMgr.LoadSessionUser decodes the session cookie and puts the
//     current user into the request context for handlers and templates.
//  2. gatekeeper.Middleware is the access-control gate: it classifies the
//     path, reconstructs session/onboarding/selection state from cookies,
//     and either lets the request through or redirects it to the next
//     unmet onboarding step.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey,
		appCfg.SessionName,
		appCfg.SessionDomain,
		appCfg.SessionMaxAge,
		secure,
		logger,
	)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Cookie signatures alone don't survive logout or admin revocation;
	// the Mongo store is the authority on whether a session is still live.
	sessionMgr.SetVerifier(sessionstore.New(deps.MongoDatabase))

	// The gate validates its route table and redirect targets here; a
	// misconfigured target aborts startup.
	gatekeeper, err := gate.New(gateConfig(), sessionMgr, logger)
	if err != nil {
		logger.Error("gatekeeper init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	r.Use(sessionMgr.LoadSessionUser)
	r.Use(gatekeeper.Middleware)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication pages (rendering only; issuance lives in the auth API).
	loginHandler := loginfeature.NewHandler(logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Get("/register", loginHandler.ServeRegister)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, sessionstore.New(deps.MongoDatabase), errLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Onboarding funnel.
	verifyHandler := verifyemailfeature.NewHandler(logger)
	r.Mount("/verify-email", verifyemailfeature.Routes(verifyHandler))

	onboardingHandler := onboardingfeature.NewHandler(logger)
	r.Mount("/register-business", onboardingfeature.Routes(onboardingHandler))

	selectionHandler := selectionfeature.NewHandler(secure, logger)
	selectionLimiter := ratelimit.New(30, time.Minute)
	r.Mount("/select-business", selectionfeature.BusinessRoutes(selectionHandler, selectionLimiter))
	r.Mount("/select-location", selectionfeature.LocationRoutes(selectionHandler, selectionLimiter))

	supportHandler := supportfeature.NewHandler(logger)
	r.Mount("/support", supportfeature.Routes(supportHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Default logged-in landing page.
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	return r, nil
}
