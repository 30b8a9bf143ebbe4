package service

import (
	"context"
	"time"

	"controlling_servo/internal/driver"
	"controlling_servo/internal/logger"
	"controlling_servo/internal/models"
	"controlling_servo/internal/repository"
)

// WatchdogService recenters the servo when commands stop arriving. It shares
// the Store with the command path, so a command landing between ticks always
// wins: it resets the clock the sweep reads.
type WatchdogService struct {
	store     *Store
	drv       driver.Servo
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger
	timeout   time.Duration
}

func NewWatchdogService(store *Store, drv driver.Servo, stateRepo repository.StateRepo, eventRepo repository.EventRepo, log *logger.Logger, timeout time.Duration) *WatchdogService {
	return &WatchdogService{
		store:     store,
		drv:       drv,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log,
		timeout:   timeout,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (w *WatchdogService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			w.sweep(ctx, now.UTC())
		}
	}
}

// sweep applies one dead-man's-switch check at the given instant. The store
// commits the home state only after the hardware write succeeds, so one
// silence window yields one physical write and a failed write retries on
// the next tick instead of stranding the actuator off-center.
func (w *WatchdogService) sweep(ctx context.Context, now time.Time) {
	if !w.store.Sweep(now, w.timeout) {
		return
	}

	if _, err := w.drv.Move(ctx, models.HomePosition); err != nil {
		// Store untouched: the deadline stays expired and the next tick
		// retries the write.
		if w.log != nil {
			w.log.Errorw("watchdog_recenter_failed", "err", err)
		}
		_ = w.eventRepo.Append(ctx, models.ServoEvent{
			OccurredAt:  now,
			Type:        models.EventError,
			Description: "recenter write failed",
			Metadata:    map[string]any{"error": err.Error()},
		})
		return
	}

	st := w.store.Apply(models.HomePosition, now)

	_ = w.stateRepo.Save(ctx, st)
	_ = w.eventRepo.Append(ctx, models.ServoEvent{
		OccurredAt:  now,
		Type:        models.EventRecenter,
		Description: "command timeout, returning to center",
		Metadata:    map[string]any{"position": st.Position},
	})

	if w.log != nil {
		w.log.Warnw("command_timeout_recenter", "position", st.Position)
	}
}
