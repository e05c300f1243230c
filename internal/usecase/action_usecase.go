package usecase

import (
	"context"
	"errors"
	"log"

	"skillbridge/internal/database"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidAction = errors.New("invalid action")
)

// MatchAcceptedEvent is handed to the notifier when a candidate accepts.
type MatchAcceptedEvent struct {
	MatchID uuid.UUID
	TaskID  uuid.UUID
	UserID  uuid.UUID
	Score   float64
}

// AcceptNotifier fans an acceptance out to interested parties. Delivery is
// best effort; the recorded action is authoritative either way.
type AcceptNotifier interface {
	MatchAccepted(ctx context.Context, e MatchAcceptedEvent) error
}

type ActionUsecase interface {
	// RecordAction applies accept/reject to the stored result, appends an
	// analytics row for every action including view, and notifies on accept.
	RecordAction(ctx context.Context, matchID uuid.UUID, action match.Action) error
}

type Action struct {
	db        database.DB
	results   repository.MatchResultRepository
	analytics repository.AnalyticsRepository
	notifier  AcceptNotifier
	logger    *log.Logger
}

func NewActionUsecase(
	db database.DB,
	results repository.MatchResultRepository,
	analytics repository.AnalyticsRepository,
	notifier AcceptNotifier,
	logger *log.Logger,
) *Action {
	if logger == nil {
		logger = log.Default()
	}
	return &Action{
		db:        db,
		results:   results,
		analytics: analytics,
		notifier:  notifier,
		logger:    logger,
	}
}

func (u *Action) RecordAction(ctx context.Context, matchID uuid.UUID, action match.Action) error {
	if matchID == uuid.Nil {
		return ErrInvalidInput
	}
	if !action.Valid() {
		return ErrInvalidAction
	}

	result, err := u.results.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return ErrInternal
	}

	// The settled status and its analytics row commit together: a decision
	// must never exist without an audit trail.
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if status, ok := action.Status(); ok {
		if err := u.results.WithTx(tx).SetStatus(ctx, matchID, status); err != nil {
			if errors.Is(err, repository.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return ErrInternal
		}
	}

	err = u.analytics.WithTx(tx).Insert(ctx, match.AnalyticsEntry{
		MatchType: "task_match",
		UserID:    result.UserID,
		TaskID:    result.TaskID,
		Score:     result.Score,
		Action:    action,
	})
	if err != nil {
		return ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		return ErrInternal
	}

	if action == match.ActionAccept && u.notifier != nil {
		err := u.notifier.MatchAccepted(ctx, MatchAcceptedEvent{
			MatchID: result.ID,
			TaskID:  result.TaskID,
			UserID:  result.UserID,
			Score:   result.Score,
		})
		if err != nil {
			u.logger.Printf("[Action] Accept notification failed match_id=%s err=%v", matchID, err)
		}
	}

	return nil
}
