package worker

import (
	"context"
	"sync"
	"time"

	"github.com/fancards/fancards-go/internal/drop"
	"github.com/fancards/fancards-go/internal/logger"
)

// Janitor periodically sweeps expired drop sessions out of the registry.
// Expiry itself is enforced lazily on access; the janitor only reclaims
// memory and records expiry metrics.
type Janitor struct {
	registry *drop.Registry
	interval time.Duration

	now      func() time.Time
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewJanitor creates a janitor sweeping at the given interval
func NewJanitor(registry *drop.Registry, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Janitor{
		registry: registry,
		interval: interval,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start launches the sweep loop
func (j *Janitor) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgJanitorStarted, "interval", j.interval)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := j.registry.Sweep(j.now()); removed > 0 {
					log.Info(LogMsgSessionsSwept, "removed", removed, "remaining", j.registry.Len())
				}
			case <-j.shutdown:
				return
			}
		}
	}()
}

// Shutdown stops the sweep loop and waits for it to exit
func (j *Janitor) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgJanitorStopping)

	close(j.shutdown)

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgJanitorStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgJanitorTimeout)
		return ctx.Err()
	}
}
