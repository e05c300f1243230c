package match

import (
	"time"

	"skillbridge/internal/domain/scoring"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionView   Action = "view"
)

func (a Action) Valid() bool {
	return a == ActionAccept || a == ActionReject || a == ActionView
}

// Status maps a decision action to the result status it settles. Views are
// recorded for analytics only and leave the status alone.
func (a Action) Status() (Status, bool) {
	switch a {
	case ActionAccept:
		return StatusAccepted, true
	case ActionReject:
		return StatusRejected, true
	default:
		return "", false
	}
}

// Result is one stored (task, user) compatibility record. At most one live
// row exists per pair; re-scoring refreshes Score and Breakdown but leaves
// Status to explicit accept/reject actions.
type Result struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	UserID    uuid.UUID
	Score     float64
	Breakdown scoring.Breakdown
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Preferences is the optional per-user bias layer. It is stored and served
// back but not folded into the composite score.
type Preferences struct {
	UserID                 uuid.UUID
	PreferredCategories    []string
	PreferredSkills        []string
	LocationPreference     map[string]any
	AvailabilityPreference map[string]any
	UpdatedAt              time.Time
}

// AnalyticsEntry is one append-only action log row.
type AnalyticsEntry struct {
	MatchType string
	UserID    uuid.UUID
	TaskID    uuid.UUID
	Score     float64
	Action    Action
	CreatedAt time.Time
}
