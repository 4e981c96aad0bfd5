// internal/poller/runner.go
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Runner ticks the poll loop. All drives share one serial bus, so one
// goroutine polls them strictly in sequence. No overlap between cycles.
type Runner struct {
	pollers  []*Poller
	interval time.Duration
	log      zerolog.Logger
}

// NewRunner wires the loop. The interval must already be inside the
// configured bounds.
func NewRunner(pollers []*Poller, interval time.Duration, logger zerolog.Logger) (*Runner, error) {
	if len(pollers) == 0 {
		return nil, errors.New("poller: no drives to poll")
	}
	if interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	return &Runner{pollers: pollers, interval: interval, log: logger}, nil
}

// Run polls until ctx is cancelled. Cancellation is honored at tick
// boundaries; a cycle in flight finishes first. Each polled drive emits one
// Update on out; a nil channel skips emission.
func (r *Runner) Run(ctx context.Context, out chan<- Update) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Int("drives", len(r.pollers)).Msg("poll loop started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("poll loop stopped")
			return
		case t := <-ticker.C:
			r.tick(ctx, t, out)
		}
	}
}

func (r *Runner) tick(ctx context.Context, at time.Time, out chan<- Update) {
	for _, p := range r.pollers {
		p.PollOnce()
		if out == nil {
			continue
		}
		u := Update{
			Drive:     p.Name(),
			At:        at,
			Telemetry: p.Telemetry(),
			Failures:  p.Failures(),
		}
		select {
		case out <- u:
		case <-ctx.Done():
			return
		}
	}
}
