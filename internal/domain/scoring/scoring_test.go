package scoring

import (
	"math"
	"testing"
	"time"

	"skillbridge/internal/domain/profile"
	"skillbridge/internal/domain/task"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightSkills + WeightInterests + WeightLocation + WeightAvailability + WeightEngagement
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected weights to sum to 1.0, got %v", sum)
	}
}

func TestSkillSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		user     []string
		required []string
		want     float64
	}{
		{"both empty", nil, nil, 0},
		{"user empty", nil, []string{"cooking"}, 0},
		{"required empty", []string{"cooking"}, nil, 0},
		{"identical", []string{"cooking"}, []string{"Cooking"}, 1},
		{"partial overlap", []string{"cooking", "teaching"}, []string{"cooking", "patience"}, 1.0 / 3.0},
		{"no overlap", []string{"gardening"}, []string{"coding"}, 0},
		{"case insensitive", []string{"GO", "sql"}, []string{"go", "SQL"}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SkillSimilarity(tc.user, tc.required)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			assertInRange(t, got)
		})
	}
}

func TestInterestSimilarity(t *testing.T) {
	got := InterestSimilarity([]string{"cooking"}, "cooking", nil)
	if got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}

	got = InterestSimilarity([]string{"music"}, "cooking", []string{"baking"})
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}

	// Category and tags form one set: {cooking, baking} vs {cooking} = 1/2.
	got = InterestSimilarity([]string{"cooking"}, "cooking", []string{"baking"})
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %v", got)
	}

	if InterestSimilarity(nil, "cooking", []string{"baking"}) != 0 {
		t.Fatalf("expected 0 for empty interests")
	}
}

func TestLocationScore(t *testing.T) {
	cases := []struct {
		name    string
		user    string
		task    string
		virtual bool
		want    float64
	}{
		{"virtual wins", "Berlin", "Munich", true, 1.0},
		{"missing user side", "", "Berlin", false, 0.5},
		{"missing task side", "Berlin", "", false, 0.5},
		{"exact match", "Berlin, Germany", "berlin, germany", false, 1.0},
		{"shared token", "Mitte, Berlin", "Kreuzberg, Berlin", false, 0.8},
		{"short shared token ignored", "A, NY", "B, NY", false, 0.3},
		{"different", "Berlin", "Munich", false, 0.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LocationScore(tc.user, tc.task, tc.virtual)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAvailabilityScore(t *testing.T) {
	now := time.Now().UTC()
	window := profile.TimeWindow{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}

	if got := AvailabilityScore(nil, &now); got != 0.5 {
		t.Fatalf("expected 0.5 without windows, got %v", got)
	}
	if got := AvailabilityScore([]profile.TimeWindow{window}, nil); got != 0.5 {
		t.Fatalf("expected 0.5 without schedule, got %v", got)
	}
	if got := AvailabilityScore([]profile.TimeWindow{window}, &now); got != 1.0 {
		t.Fatalf("expected 1.0 inside window, got %v", got)
	}

	outside := now.Add(48 * time.Hour)
	if got := AvailabilityScore([]profile.TimeWindow{window}, &outside); got != 0.2 {
		t.Fatalf("expected 0.2 outside windows, got %v", got)
	}
}

func TestEngagementScore(t *testing.T) {
	if got := EngagementScore(profile.History{}); got != 0.5 {
		t.Fatalf("expected neutral 0.5 for empty history, got %v", got)
	}

	// Completed bonus caps at +0.3.
	got := EngagementScore(profile.History{CompletedTasks: 10})
	if math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("expected 0.8, got %v", got)
	}

	rating := 5.0
	got = EngagementScore(profile.History{AverageRating: &rating})
	if math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected 0.7 for rating 5, got %v", got)
	}

	low := 1.0
	got = EngagementScore(profile.History{AverageRating: &low})
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected 0.3 for rating 1, got %v", got)
	}

	got = EngagementScore(profile.History{LastActivity: time.Now().Add(-24 * time.Hour)})
	if math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected recent-activity bonus, got %v", got)
	}

	got = EngagementScore(profile.History{LastActivity: time.Now().Add(-60 * 24 * time.Hour)})
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected inactivity penalty, got %v", got)
	}

	// Result always clamps to [0,1].
	high := 5.0
	got = EngagementScore(profile.History{
		CompletedTasks: 100,
		AverageRating:  &high,
		LastActivity:   time.Now(),
	})
	if got != 1.0 {
		t.Fatalf("expected clamp at 1.0, got %v", got)
	}
	assertInRange(t, got)
}

func TestComputeWorkedScenario(t *testing.T) {
	u := profile.UserProfile{
		Skills:    []string{"cooking", "teaching"},
		Interests: []string{"cooking"},
	}
	tk := task.TaskProfile{
		SkillsRequired: []string{"cooking", "patience"},
		Category:       "cooking",
		IsVirtual:      true,
	}

	s := Compute(u, tk, profile.History{})

	if math.Abs(s.Breakdown.Skills-1.0/3.0) > 1e-9 {
		t.Fatalf("expected skill jaccard 1/3, got %v", s.Breakdown.Skills)
	}
	if s.Breakdown.Interests != 1.0 {
		t.Fatalf("expected interest 1.0, got %v", s.Breakdown.Interests)
	}
	if s.Breakdown.Location != 1.0 {
		t.Fatalf("expected location 1.0 for virtual task, got %v", s.Breakdown.Location)
	}
	if s.Breakdown.Availability != 0.5 {
		t.Fatalf("expected availability 0.5, got %v", s.Breakdown.Availability)
	}
	if s.Breakdown.Engagement != 0.5 {
		t.Fatalf("expected engagement 0.5, got %v", s.Breakdown.Engagement)
	}

	want := (1.0/3.0)*WeightSkills + 1.0*WeightInterests + 1.0*WeightLocation + 0.5*WeightAvailability + 0.5*WeightEngagement
	if math.Abs(s.Total-want) > 1e-9 {
		t.Fatalf("expected total %v, got %v", want, s.Total)
	}
	if math.Abs(s.Total-0.65) > 0.01 {
		t.Fatalf("expected total near 0.649, got %v", s.Total)
	}
	if !s.Eligible() {
		t.Fatalf("expected scenario to be eligible")
	}
}

func TestComputeZeroOverlapIneligible(t *testing.T) {
	u := profile.UserProfile{
		Skills:    []string{"gardening"},
		Interests: []string{"chess"},
		Location:  "Hamburg",
	}
	tk := task.TaskProfile{
		SkillsRequired: []string{"cooking"},
		Category:       "cooking",
		Location:       "Munich",
	}

	s := Compute(u, tk, profile.History{})

	// 0*0.3 + 0*0.2 + 0.3*0.2 + 0.5*0.15 + 0.5*0.15 = 0.21
	if s.Total > EligibilityThreshold {
		t.Fatalf("expected ineligible total, got %v", s.Total)
	}
	if s.Eligible() {
		t.Fatalf("expected Eligible() == false")
	}
	assertInRange(t, s.Total)
}

func assertInRange(t *testing.T, v float64) {
	t.Helper()
	if v < 0 || v > 1 {
		t.Fatalf("score out of [0,1]: %v", v)
	}
}
