// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	sessionstore "github.com/opsdeck/opsdeck/internal/app/store/sessions"
	"github.com/opsdeck/opsdeck/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// sessionSweep is started in Startup and stopped in Shutdown.
var sessionSweep *workers.SessionSweep

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. OpsDeck
// uses it to launch the expired-session sweep worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	sessionSweep = workers.NewSessionSweep(
		sessionstore.New(deps.MongoDatabase),
		logger,
		appCfg.SweepInterval,
		appCfg.SweepRetention,
	)
	sessionSweep.Start()
	return nil
}
