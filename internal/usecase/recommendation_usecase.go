package usecase

import (
	"context"
	"errors"
	"log"

	"skillbridge/internal/domain/profile"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

const (
	RecommendationTypeTasks = "tasks"
	RecommendationTypeUsers = "users"
)

// CollaboratorRecommendation is an opposite-role user suggested by shared
// completed-task history with the requester's cohort.
type CollaboratorRecommendation struct {
	UserID         uuid.UUID    `json:"user_id"`
	Role           profile.Role `json:"user_type"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Location       string       `json:"location"`
	Skills         []string     `json:"skills"`
	Interests      []string     `json:"interests"`
	CompletedTasks int          `json:"completed_tasks"`
	AverageRating  *float64     `json:"average_rating"`
}

// Recommendations bundles one of the two recommendation shapes; exactly one
// of Tasks or Users is populated depending on the requested type.
type Recommendations struct {
	Type  string                       `json:"type"`
	Tasks []TaskMatch                  `json:"tasks,omitempty"`
	Users []CollaboratorRecommendation `json:"users,omitempty"`
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, recType string, limit int) (Recommendations, error)
}

type Recommendation struct {
	matching MatchingUsecase
	users    repository.UserRepository
	logger   *log.Logger
}

func NewRecommendationUsecase(matching MatchingUsecase, users repository.UserRepository, logger *log.Logger) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{matching: matching, users: users, logger: logger}
}

func (u *Recommendation) Recommend(ctx context.Context, userID uuid.UUID, recType string, limit int) (Recommendations, error) {
	if userID == uuid.Nil {
		return Recommendations{}, ErrInvalidInput
	}
	limit = clampLimit(limit)

	switch recType {
	case "", RecommendationTypeTasks:
		tasks, err := u.matching.MatchTasksForUser(ctx, userID, limit)
		if err != nil {
			return Recommendations{}, err
		}
		return Recommendations{Type: RecommendationTypeTasks, Tasks: tasks}, nil

	case RecommendationTypeUsers:
		return u.recommendUsers(ctx, userID, limit)

	default:
		return Recommendations{}, ErrInvalidInput
	}
}

func (u *Recommendation) recommendUsers(ctx context.Context, userID uuid.UUID, limit int) (Recommendations, error) {
	user, err := u.users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Recommendations{Type: RecommendationTypeUsers, Users: []CollaboratorRecommendation{}}, nil
		}
		return Recommendations{}, ErrInternal
	}

	collaborators, err := u.users.ListCollaborators(ctx, user.Role.Opposite(), userID, limit)
	if err != nil {
		return Recommendations{}, ErrInternal
	}

	out := make([]CollaboratorRecommendation, 0, len(collaborators))
	for _, c := range collaborators {
		out = append(out, CollaboratorRecommendation{
			UserID:         c.Profile.ID,
			Role:           c.Profile.Role,
			FirstName:      c.Profile.FirstName,
			LastName:       c.Profile.LastName,
			Location:       c.Profile.Location,
			Skills:         c.Profile.Skills,
			Interests:      c.Profile.Interests,
			CompletedTasks: c.History.CompletedTasks,
			AverageRating:  c.History.AverageRating,
		})
	}

	return Recommendations{Type: RecommendationTypeUsers, Users: out}, nil
}
