// internal/app/system/workers/sessionsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/opsdeck/opsdeck/internal/app/store/sessions"
	"github.com/opsdeck/opsdeck/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// SessionSweep is a background worker that deletes long-expired session
// records so the collection does not grow without bound. Live-session
// validity is enforced at verification time; the sweep is purely hygiene.
type SessionSweep struct {
	sessions  *sessions.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewSessionSweep creates a session sweep worker.
//
// Parameters:
//   - sessStore: the sessions store
//   - logger: zap logger
//   - interval: how often to run the sweep (e.g., 10 minutes)
//   - retention: how long expired records are kept before deletion
func NewSessionSweep(sessStore *sessions.Store, logger *zap.Logger, interval, retention time.Duration) *SessionSweep {
	return &SessionSweep{
		sessions:  sessStore,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *SessionSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session sweep worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("session sweep worker stopped")
}

func (w *SessionSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	count, err := w.sessions.SweepExpired(ctx, w.retention)
	if err != nil {
		w.log.Error("failed to sweep expired sessions", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("swept expired sessions", zap.Int64("count", count))
	}
}
