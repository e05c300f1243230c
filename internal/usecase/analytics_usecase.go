package usecase

import (
	"context"
	"log"
	"time"

	"skillbridge/internal/repository"
)

const topMatchLimit = 10

// AnalyticsReport summarises recorded match actions over a trailing window.
type AnalyticsReport struct {
	Period     string                     `json:"period"`
	Statistics []repository.ActionStat    `json:"statistics"`
	TopMatches []repository.AcceptedMatch `json:"top_matches"`
}

type AnalyticsUsecase interface {
	Report(ctx context.Context, period string) (AnalyticsReport, error)
}

type Analytics struct {
	analytics repository.AnalyticsRepository
	results   repository.MatchResultRepository
	logger    *log.Logger

	now func() time.Time
}

func NewAnalyticsUsecase(analytics repository.AnalyticsRepository, results repository.MatchResultRepository, logger *log.Logger) *Analytics {
	if logger == nil {
		logger = log.Default()
	}
	return &Analytics{
		analytics: analytics,
		results:   results,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Analytics) Report(ctx context.Context, period string) (AnalyticsReport, error) {
	window, ok := periodWindow(period)
	if !ok {
		return AnalyticsReport{}, ErrInvalidInput
	}
	since := u.now().Add(-window)

	stats, err := u.analytics.CountByAction(ctx, since)
	if err != nil {
		return AnalyticsReport{}, ErrInternal
	}

	top, err := u.results.TopAccepted(ctx, since, topMatchLimit)
	if err != nil {
		return AnalyticsReport{}, ErrInternal
	}

	return AnalyticsReport{
		Period:     normalizePeriod(period),
		Statistics: stats,
		TopMatches: top,
	}, nil
}

func periodWindow(period string) (time.Duration, bool) {
	switch period {
	case "1d":
		return 24 * time.Hour, true
	case "", "7d":
		return 7 * 24 * time.Hour, true
	case "30d":
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

func normalizePeriod(period string) string {
	if period == "" {
		return "7d"
	}
	return period
}
