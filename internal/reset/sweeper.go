// AngelaMos | 2026
// sweeper.go

package reset

import (
	"context"
	"log/slog"
	"time"
)

// sweepHourUTC is when the daily purge of expired tokens runs. Expiry is
// still enforced on every read; the sweep only reclaims dead rows.
const sweepHourUTC = 3

type Sweeper struct {
	service *Service
	logger  *slog.Logger
}

func NewSweeper(service *Service, logger *slog.Logger) *Sweeper {
	return &Sweeper{service: service, logger: logger}
}

// Run blocks until ctx is cancelled, firing once per day at sweepHourUTC.
// Callers start it in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	for {
		wait := time.Until(nextSweep(time.Now().UTC()))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("reset token sweeper stopped")
			return
		case <-timer.C:
		}

		deleted, err := s.service.DeleteExpired(ctx)
		if err != nil {
			s.logger.Error("reset token sweep failed", "error", err)
			continue
		}
		s.logger.Info("reset token sweep complete", "deleted", deleted)
	}
}

func nextSweep(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), sweepHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
