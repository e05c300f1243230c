package worker

import (
	"context"
	"log"
	"time"

	"skillbridge/internal/repository"
	"skillbridge/internal/usecase"

	"github.com/google/uuid"
)

const schedulerLockKey = "matching:scheduler:lock"

// NewMatchNotifier announces fresh matches found by a sweep.
type NewMatchNotifier interface {
	NewMatches(ctx context.Context, taskID uuid.UUID, matches []usecase.CandidateMatch) error
}

// Locker elects a single sweeper across replicas. Implementations that
// cannot reach the lock store should report acquired: result writes are
// idempotent upserts, so a duplicate sweep is cheaper than a silently
// stalled one.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// Scheduler periodically re-matches recently published tasks so late
// profile changes still surface.
type Scheduler struct {
	tasks    repository.TaskRepository
	matching usecase.MatchingUsecase
	notifier NewMatchNotifier
	locker   Locker
	logger   *log.Logger

	interval time.Duration
	lookback time.Duration
	topN     int

	now func() time.Time
}

func NewScheduler(
	tasks repository.TaskRepository,
	matching usecase.MatchingUsecase,
	notifier NewMatchNotifier,
	locker Locker,
	logger *log.Logger,
	interval, lookback time.Duration,
	topN int,
) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	if topN <= 0 {
		topN = 5
	}
	return &Scheduler{
		tasks:    tasks,
		matching: matching,
		notifier: notifier,
		locker:   locker,
		logger:   logger,
		interval: interval,
		lookback: lookback,
		topN:     topN,
		now:      time.Now,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. The first sweep
// waits a full interval so startup storms do not trigger parallel sweeps.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Printf("[Scheduler] Started interval=%s lookback=%s", s.interval, s.lookback)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("[Scheduler] Stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if s.locker != nil {
		ok, err := s.locker.SetIfNotExists(ctx, schedulerLockKey, s.now().Format(time.RFC3339), s.interval/2)
		if err != nil {
			s.logger.Printf("[Scheduler] Lock attempt failed, sweeping anyway err=%v", err)
		} else if !ok {
			return
		}
	}
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Printf("[Scheduler] Sweep failed err=%v", err)
	}
}

// RunOnce re-matches every task published inside the lookback window. A
// failure on one task never stops the rest of the sweep.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	since := s.now().Add(-s.lookback)

	taskIDs, err := s.tasks.ListPublishedSince(ctx, since)
	if err != nil {
		return err
	}

	matched := 0
	for _, taskID := range taskIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		matches, err := s.matching.MatchCandidatesForTask(ctx, taskID, s.topN)
		if err != nil {
			s.logger.Printf("[Scheduler] Matching failed task_id=%s err=%v", taskID, err)
			continue
		}
		if len(matches) == 0 {
			continue
		}
		matched++

		if s.notifier != nil {
			if err := s.notifier.NewMatches(ctx, taskID, matches); err != nil {
				s.logger.Printf("[Scheduler] Notification failed task_id=%s err=%v", taskID, err)
			}
		}
	}

	s.logger.Printf("[Scheduler] Sweep done tasks=%d with_matches=%d", len(taskIDs), matched)
	return nil
}
