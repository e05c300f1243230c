package scoring

import (
	"strings"
	"time"

	"skillbridge/internal/domain/profile"
	"skillbridge/internal/domain/task"
)

// Fixed dimension weights; they sum to exactly 1.0.
const (
	WeightSkills       = 0.30
	WeightInterests    = 0.20
	WeightLocation     = 0.20
	WeightAvailability = 0.15
	WeightEngagement   = 0.15
)

// EligibilityThreshold is the minimum composite score a candidate needs to
// appear in any ranked result.
const EligibilityThreshold = 0.30

type Breakdown struct {
	Skills       float64 `json:"skills"`
	Interests    float64 `json:"interests"`
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
	Engagement   float64 `json:"engagement"`
}

type Score struct {
	Total     float64
	Breakdown Breakdown
}

func (s Score) Eligible() bool {
	return s.Total > EligibilityThreshold
}

// Compute combines the five dimension scorers into one weighted total.
func Compute(u profile.UserProfile, t task.TaskProfile, h profile.History) Score {
	b := Breakdown{
		Skills:       SkillSimilarity(u.Skills, t.SkillsRequired),
		Interests:    InterestSimilarity(u.Interests, t.Category, t.Tags),
		Location:     LocationScore(u.Location, t.Location, t.IsVirtual),
		Availability: AvailabilityScore(u.Availability, t.ScheduledDate),
		Engagement:   EngagementScore(h),
	}

	total := b.Skills*WeightSkills +
		b.Interests*WeightInterests +
		b.Location*WeightLocation +
		b.Availability*WeightAvailability +
		b.Engagement*WeightEngagement

	return Score{Total: total, Breakdown: b}
}

// SkillSimilarity is the Jaccard index over lower-cased skill sets.
// Either side empty yields 0.
func SkillSimilarity(userSkills, requiredSkills []string) float64 {
	return jaccard(toSet(userSkills), toSet(requiredSkills))
}

// InterestSimilarity is the Jaccard index between the user's interests and
// the union of the task's category and tags.
func InterestSimilarity(interests []string, category string, tags []string) float64 {
	taskSet := toSet(tags)
	if c := normalizeTerm(category); c != "" {
		taskSet[c] = struct{}{}
	}
	return jaccard(toSet(interests), taskSet)
}

// LocationScore is a coarse string heuristic, not geocoding: virtual tasks
// always score 1.0, missing data is neutral, exact match 1.0, a shared
// comma-delimited token longer than two characters 0.8, anything else 0.3.
func LocationScore(userLocation, taskLocation string, isVirtual bool) float64 {
	if isVirtual {
		return 1.0
	}

	userLocation = strings.TrimSpace(strings.ToLower(userLocation))
	taskLocation = strings.TrimSpace(strings.ToLower(taskLocation))
	if userLocation == "" || taskLocation == "" {
		return 0.5
	}
	if userLocation == taskLocation {
		return 1.0
	}

	for _, up := range splitLocation(userLocation) {
		for _, tp := range splitLocation(taskLocation) {
			if up == tp && len(up) > 2 {
				return 0.8
			}
		}
	}

	return 0.3
}

// AvailabilityScore returns 0.5 when either side lacks data, 1.0 when the
// task's scheduled time falls inside any declared window, otherwise 0.2.
func AvailabilityScore(windows []profile.TimeWindow, scheduled *time.Time) float64 {
	if len(windows) == 0 || scheduled == nil || scheduled.IsZero() {
		return 0.5
	}

	for _, w := range windows {
		if w.Contains(*scheduled) {
			return 1.0
		}
	}

	return 0.2
}

// EngagementScore is the activity heuristic: base 0.5, up to +0.3 for
// completed tasks, (rating-3)*0.1 when rated, +0.2 for activity within 7
// days, -0.2 beyond 30 days, clamped to [0,1]. A zero LastActivity means
// the history carries no recency signal and leaves the score untouched.
func EngagementScore(h profile.History) float64 {
	score := 0.5

	if h.CompletedTasks > 0 {
		bonus := float64(h.CompletedTasks) * 0.1
		if bonus > 0.3 {
			bonus = 0.3
		}
		score += bonus
	}

	if h.AverageRating != nil && *h.AverageRating > 0 {
		score += (*h.AverageRating - 3) * 0.1
	}

	if !h.LastActivity.IsZero() {
		days := time.Since(h.LastActivity).Hours() / 24
		if days < 7 {
			score += 0.2
		} else if days > 30 {
			score -= 0.2
		}
	}

	return clamp01(score)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if v := normalizeTerm(it); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func splitLocation(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
