package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"skillbridge/internal/domain/profile"
	"skillbridge/internal/domain/scoring"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50
)

// CandidateMatch is one ranked user for a task.
type CandidateMatch struct {
	UserID    uuid.UUID         `json:"user_id"`
	Role      profile.Role      `json:"user_type"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Location  string            `json:"location"`
	Skills    []string          `json:"skills"`
	Interests []string          `json:"interests"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	CreatedAt time.Time         `json:"-"`
}

// TaskMatch is one ranked task for a user.
type TaskMatch struct {
	TaskID        uuid.UUID         `json:"task_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Location      string            `json:"location"`
	IsVirtual     bool              `json:"is_virtual"`
	ScheduledDate *time.Time        `json:"scheduled_date"`
	CreatorRole   string            `json:"creator_type"`
	Score         float64           `json:"score"`
	Breakdown     scoring.Breakdown `json:"breakdown"`
	CreatedAt     time.Time         `json:"-"`
}

type MatchingUsecase interface {
	// MatchCandidatesForTask ranks opposite-role users for a published task.
	// A missing or unpublished task yields an empty list, not an error.
	MatchCandidatesForTask(ctx context.Context, taskID uuid.UUID, limit int) ([]CandidateMatch, error)
	// MatchTasksForUser ranks published opposite-role tasks for an active
	// user. A missing or inactive user yields an empty list.
	MatchTasksForUser(ctx context.Context, userID uuid.UUID, limit int) ([]TaskMatch, error)
}

// MatchCache is the short-TTL ranked-result cache. Implementations may be
// nil-safe no-ops when Redis is unavailable.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Matching struct {
	users   repository.UserRepository
	tasks   repository.TaskRepository
	results repository.MatchResultRepository
	cache   MatchCache
	logger  *log.Logger

	cacheTTL time.Duration
}

func NewMatchingUsecase(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	results repository.MatchResultRepository,
	cache MatchCache,
	logger *log.Logger,
	cacheTTL time.Duration,
) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{
		users:    users,
		tasks:    tasks,
		results:  results,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

func (u *Matching) MatchCandidatesForTask(ctx context.Context, taskID uuid.UUID, limit int) ([]CandidateMatch, error) {
	if taskID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("matches:task:%s:%d", taskID, limit)
	if u.cache != nil {
		var cached []CandidateMatch
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	t, err := u.tasks.GetPublishedByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return []CandidateMatch{}, nil
		}
		return nil, ErrInternal
	}

	pool, err := u.users.ListActiveByRole(ctx, profile.Role(t.CreatorRole).Opposite())
	if err != nil {
		return nil, ErrInternal
	}

	matches := make([]CandidateMatch, 0, len(pool))
	for _, c := range pool {
		// Defensive: the pool query excludes the creator's role already, so
		// a self-match can only appear on corrupt data.
		if c.Profile.ID == t.CreatedBy {
			continue
		}

		s := scoring.Compute(c.Profile, t, c.History)
		if !s.Eligible() {
			continue
		}

		matches = append(matches, CandidateMatch{
			UserID:    c.Profile.ID,
			Role:      c.Profile.Role,
			FirstName: c.Profile.FirstName,
			LastName:  c.Profile.LastName,
			Location:  c.Profile.Location,
			Skills:    c.Profile.Skills,
			Interests: c.Profile.Interests,
			Score:     s.Total,
			Breakdown: s.Breakdown,
			CreatedAt: c.Profile.CreatedAt,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].UserID.String() < matches[j].UserID.String()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	for _, m := range matches {
		u.persistResult(ctx, t.ID, m.UserID, m.Score, m.Breakdown)
	}

	if u.cache != nil && u.cacheTTL > 0 {
		_ = u.cache.SetJSON(ctx, cacheKey, matches, u.cacheTTL)
	}

	return matches, nil
}

func (u *Matching) MatchTasksForUser(ctx context.Context, userID uuid.UUID, limit int) ([]TaskMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("matches:user:%s:%d", userID, limit)
	if u.cache != nil {
		var cached []TaskMatch
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	user, err := u.users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []TaskMatch{}, nil
		}
		return nil, ErrInternal
	}

	history, err := u.users.GetHistory(ctx, userID)
	if err != nil {
		// History is a bias signal, not a hard dependency; score neutrally.
		u.logger.Printf("[Matching] History fetch failed user_id=%s err=%v", userID, err)
		history = profile.History{}
	}

	pool, err := u.tasks.ListPublishedByCreatorRole(ctx, user.Role.Opposite(), userID, 50)
	if err != nil {
		return nil, ErrInternal
	}

	matches := make([]TaskMatch, 0, len(pool))
	for _, t := range pool {
		s := scoring.Compute(user, t, history)
		if !s.Eligible() {
			continue
		}

		matches = append(matches, TaskMatch{
			TaskID:        t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Category:      t.Category,
			Location:      t.Location,
			IsVirtual:     t.IsVirtual,
			ScheduledDate: t.ScheduledDate,
			CreatorRole:   t.CreatorRole,
			Score:         s.Total,
			Breakdown:     s.Breakdown,
			CreatedAt:     t.CreatedAt,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].TaskID.String() < matches[j].TaskID.String()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	for _, m := range matches {
		u.persistResult(ctx, m.TaskID, userID, m.Score, m.Breakdown)
	}

	if u.cache != nil && u.cacheTTL > 0 {
		_ = u.cache.SetJSON(ctx, cacheKey, matches, u.cacheTTL)
	}

	return matches, nil
}

// persistResult upserts one scored pair. A failed write degrades the stored
// view but must not abort the matching run.
func (u *Matching) persistResult(ctx context.Context, taskID, userID uuid.UUID, score float64, breakdown scoring.Breakdown) {
	if u.results == nil {
		return
	}
	err := u.results.Upsert(ctx, repository.MatchResultUpsert{
		TaskID:    taskID,
		UserID:    userID,
		Score:     score,
		Breakdown: breakdown,
	})
	if err != nil {
		u.logger.Printf("[Matching] Result upsert failed task_id=%s user_id=%s err=%v", taskID, userID, err)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultMatchLimit
	}
	if limit > maxMatchLimit {
		return maxMatchLimit
	}
	return limit
}
