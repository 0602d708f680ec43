package cleanup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/storage"
)

// cutoffHour is the local hour after which yesterday's completed reminders go.
const cutoffHour = 4

// DeletionTime returns when a reminder completed at completedAt becomes
// eligible for deletion: 04:00 on the following day, in completedAt's zone.
func DeletionTime(completedAt time.Time) time.Time {
	y, m, d := completedAt.Date()
	return time.Date(y, m, d+1, cutoffHour, 0, 0, 0, completedAt.Location())
}

// Eligible reports whether b should be removed at now.
func Eligible(b model.Blink, now time.Time) bool {
	if !b.IsReminder() || !b.IsCompleted || b.CompletedAt == nil {
		return false
	}
	return !now.Before(DeletionTime(b.CompletedAt.In(now.Location())))
}

// Store is the part of storage.Storage the sweeper needs.
type Store interface {
	List(ctx context.Context) ([]model.Blink, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper deletes completed reminders past their cutoff.
type Sweeper struct {
	store   Store
	limiter *RateLimiter
	logger  logger.Logger
}

// NewSweeper creates a Sweeper. limiter may be nil when only Sweep is used.
func NewSweeper(store Store, limiter *RateLimiter, log logger.Logger) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{store: store, limiter: limiter, logger: log}
}

// Sweep scans all Blinks and deletes every eligible reminder. Delete
// failures don't stop the sweep but are all returned.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	blinks, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list blinks: %w", err)
	}

	var (
		deleted int
		errs    []error
	)
	for _, b := range blinks {
		if !Eligible(b, now) {
			continue
		}
		if err := s.store.Delete(ctx, b.ID); err != nil {
			s.logger.Warn("failed to delete completed reminder",
				logger.String("id", b.ID),
				logger.Error(err))
			errs = append(errs, fmt.Errorf("delete %s: %w", b.ID, err))
			continue
		}

		s.logger.Info("cleaned up completed reminder",
			logger.String("id", b.ID),
			logger.String("title", b.Title),
			logger.Time("completed_at", *b.CompletedAt))
		deleted++
	}

	if deleted > 0 {
		s.logger.Info("cleanup completed", logger.Int("deleted", deleted))
	} else {
		s.logger.Debug("no reminders to clean up")
	}

	return deleted, errors.Join(errs...)
}

// MaybeSweep sweeps only when the rate limiter allows it, then records
// the run. It returns false when the sweep was skipped.
func (s *Sweeper) MaybeSweep(ctx context.Context) (bool, int, error) {
	if s.limiter == nil {
		return false, 0, errors.New("cleanup: no rate limiter configured")
	}

	ok, err := s.limiter.ShouldRun(ctx)
	if err != nil {
		return false, 0, err
	}
	if !ok {
		s.logger.Debug("cleanup skipped, ran recently")
		return false, 0, nil
	}

	deleted, err := s.Sweep(ctx, s.limiter.now())
	if err != nil {
		return true, deleted, err
	}
	return true, deleted, s.limiter.MarkRun(ctx)
}

// RateLimiter persists the last run time and allows a new run once
// Interval has passed.
type RateLimiter struct {
	KV       storage.KV
	Key      string
	Interval time.Duration
	Now      func() time.Time
}

func (r *RateLimiter) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// ShouldRun is true when no run is recorded, the record is unreadable, or
// at least Interval has elapsed since it.
func (r *RateLimiter) ShouldRun(ctx context.Context) (bool, error) {
	raw, ok, err := r.KV.Get(ctx, r.Key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", r.Key, err)
	}
	if !ok {
		return true, nil
	}

	last, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return true, nil
	}
	return r.now().Sub(last) >= r.Interval, nil
}

// MarkRun records now as the last run.
func (r *RateLimiter) MarkRun(ctx context.Context) error {
	return r.KV.Set(ctx, r.Key, r.now().Format(time.RFC3339Nano))
}
