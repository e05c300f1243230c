package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/pkg/jwt"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubMatching struct {
	taskCalls int
	userCalls int
}

func (s *stubMatching) MatchCandidatesForTask(ctx context.Context, taskID uuid.UUID, limit int) ([]usecase.CandidateMatch, error) {
	s.taskCalls++
	return []usecase.CandidateMatch{{UserID: uuid.New(), Score: 0.7}}, nil
}

func (s *stubMatching) MatchTasksForUser(ctx context.Context, userID uuid.UUID, limit int) ([]usecase.TaskMatch, error) {
	s.userCalls++
	return []usecase.TaskMatch{}, nil
}

type stubActions struct{}

func (stubActions) RecordAction(ctx context.Context, matchID uuid.UUID, action match.Action) error {
	return nil
}

type stubRecommendations struct{}

func (stubRecommendations) Recommend(ctx context.Context, userID uuid.UUID, recType string, limit int) (usecase.Recommendations, error) {
	return usecase.Recommendations{Type: usecase.RecommendationTypeTasks}, nil
}

type stubPreferences struct{}

func (stubPreferences) SavePreferences(ctx context.Context, p match.Preferences) error {
	return nil
}

type stubAnalytics struct{}

func (stubAnalytics) Report(ctx context.Context, period string) (usecase.AnalyticsReport, error) {
	return usecase.AnalyticsReport{Period: "7d"}, nil
}

func newTestApp() (*fiber.App, *stubMatching) {
	app := fiber.New()
	errMw := middleware.NewErrorMiddleware(nil)
	app.Use(errMw.Middleware())

	matching := &stubMatching{}
	Register(app.Group("/api/v1"), Deps{
		JWT:             jwt.NewHMACService("test-secret", time.Minute),
		Matching:        matching,
		Actions:         stubActions{},
		Recommendations: stubRecommendations{},
		Preferences:     stubPreferences{},
		Analytics:       stubAnalytics{},
	})
	return app, matching
}

func TestMatchRoutesServeWithoutIdentity(t *testing.T) {
	app, matching := newTestApp()

	paths := []string{
		"/api/v1/matches/task/" + uuid.NewString(),
		"/api/v1/matches/user/" + uuid.NewString(),
		"/api/v1/analytics",
	}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status = %d, want 200", path, resp.StatusCode)
		}
	}

	if matching.taskCalls != 1 || matching.userCalls != 1 {
		t.Fatalf("bare requests must reach the matching handlers")
	}
}

func TestPersonalisedRoutesRequireIdentity(t *testing.T) {
	app, _ := newTestApp()

	for _, req := range []*http.Request{
		httptest.NewRequest("GET", "/api/v1/recommendations", nil),
		httptest.NewRequest("PUT", "/api/v1/preferences", nil),
	} {
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", req.Method, req.URL.Path, resp.StatusCode)
		}
	}
}

func TestRecommendationsAcceptGatewayIdentity(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest("GET", "/api/v1/recommendations?type=tasks", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	req.Header.Set("X-User-Role", "youth")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
