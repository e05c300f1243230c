package usecase

import (
	"context"
	"errors"
	"testing"

	"skillbridge/internal/domain/profile"
	"skillbridge/internal/repository"

	"github.com/google/uuid"
)

type stubMatching struct {
	tasks   []TaskMatch
	taskErr error
	lastFor uuid.UUID
}

func (s *stubMatching) MatchCandidatesForTask(ctx context.Context, taskID uuid.UUID, limit int) ([]CandidateMatch, error) {
	return nil, nil
}

func (s *stubMatching) MatchTasksForUser(ctx context.Context, userID uuid.UUID, limit int) ([]TaskMatch, error) {
	s.lastFor = userID
	if s.taskErr != nil {
		return nil, s.taskErr
	}
	return s.tasks, nil
}

func TestRecommendDefaultsToTasks(t *testing.T) {
	userID := uuid.New()
	matching := &stubMatching{tasks: []TaskMatch{{TaskID: uuid.New(), Score: 0.8}}}

	u := NewRecommendationUsecase(matching, &stubUserRepo{}, nil)

	recs, err := u.Recommend(context.Background(), userID, "", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if recs.Type != RecommendationTypeTasks {
		t.Fatalf("type = %s, want tasks", recs.Type)
	}
	if len(recs.Tasks) != 1 || matching.lastFor != userID {
		t.Fatalf("task recommendations not delegated to matching")
	}
}

func TestRecommendUsersListsOppositeRoleCollaborators(t *testing.T) {
	userID := uuid.New()
	rating := 4.5
	collab := repository.CandidateUser{
		Profile: profile.UserProfile{
			ID:        uuid.New(),
			Role:      profile.RoleSenior,
			FirstName: "Marit",
			Active:    true,
		},
		History: profile.History{CompletedTasks: 6, AverageRating: &rating},
	}

	users := &stubUserRepo{
		user:    profile.UserProfile{ID: userID, Role: profile.RoleYouth, Active: true},
		collabs: []repository.CandidateUser{collab},
	}

	u := NewRecommendationUsecase(&stubMatching{}, users, nil)

	recs, err := u.Recommend(context.Background(), userID, RecommendationTypeUsers, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if users.collabsRole != profile.RoleSenior {
		t.Fatalf("collaborator role = %s, want senior", users.collabsRole)
	}
	if len(recs.Users) != 1 {
		t.Fatalf("got %d user recommendations, want 1", len(recs.Users))
	}
	got := recs.Users[0]
	if got.CompletedTasks != 6 || got.AverageRating == nil || *got.AverageRating != 4.5 {
		t.Fatalf("history aggregates not carried: %+v", got)
	}
}

func TestRecommendUsersMissingRequesterIsEmpty(t *testing.T) {
	users := &stubUserRepo{userErr: repository.ErrUserNotFound}

	u := NewRecommendationUsecase(&stubMatching{}, users, nil)

	recs, err := u.Recommend(context.Background(), uuid.New(), RecommendationTypeUsers, 10)
	if err != nil {
		t.Fatalf("missing requester must not error, got %v", err)
	}
	if len(recs.Users) != 0 {
		t.Fatalf("got %d recommendations for missing requester, want 0", len(recs.Users))
	}
}

func TestRecommendRejectsUnknownType(t *testing.T) {
	u := NewRecommendationUsecase(&stubMatching{}, &stubUserRepo{}, nil)

	_, err := u.Recommend(context.Background(), uuid.New(), "pets", 10)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
