package queue

import (
	"time"

	"skillbridge/internal/domain/scoring"

	"github.com/google/uuid"
)

// Queue names. Each queue carries one message family; consumers must not
// assume cross-queue ordering.
const (
	QueueRequests      = "matching:requests"
	QueueResults       = "matching:results"
	QueueNotifications = "matching:notifications"
)

// Request types. Result messages echo these back so downstream consumers
// key on a single type field across both queues.
const (
	RequestTaskMatches = "task_matches"
	RequestUserMatches = "user_matches"
)

// Notification types.
const (
	NotificationMatchAccepted = "match_accepted"
	NotificationNewMatches    = "new_matches"
)

// MatchRequest asks the worker to run matching for one anchor. Exactly one
// of TaskID or UserID is set depending on Type.
type MatchRequest struct {
	Type     string    `json:"type"`
	TaskID   uuid.UUID `json:"taskId,omitempty"`
	UserID   uuid.UUID `json:"userId,omitempty"`
	Priority string    `json:"priority,omitempty"`
}

func (r MatchRequest) Valid() bool {
	switch r.Type {
	case RequestTaskMatches:
		return r.TaskID != uuid.Nil
	case RequestUserMatches:
		return r.UserID != uuid.Nil
	default:
		return false
	}
}

// MatchEntry is one ranked match inside a result or notification message.
// Task-anchored runs fill the user side; user-anchored runs fill the task
// side. Pointers keep the absent side out of the wire payload.
type MatchEntry struct {
	TaskID    *uuid.UUID        `json:"taskId,omitempty"`
	UserID    *uuid.UUID        `json:"userId,omitempty"`
	UserType  string            `json:"userType,omitempty"`
	FirstName string            `json:"firstName,omitempty"`
	LastName  string            `json:"lastName,omitempty"`
	Title     string            `json:"title,omitempty"`
	Category  string            `json:"category,omitempty"`
	Location  string            `json:"location,omitempty"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// MatchResultMessage reports a completed matching run downstream. Type
// echoes the request type that triggered the run.
type MatchResultMessage struct {
	Type      string       `json:"type"`
	TaskID    *uuid.UUID   `json:"taskId,omitempty"`
	UserID    *uuid.UUID   `json:"userId,omitempty"`
	Matches   []MatchEntry `json:"matches"`
	Timestamp time.Time    `json:"timestamp"`
}

// Notification is a fan-out event for the notification service. MatchID and
// UserID are set only for events about a single stored result; new_matches
// events carry the ranked Matches instead.
type Notification struct {
	Type      string       `json:"type"`
	MatchID   *uuid.UUID   `json:"matchId,omitempty"`
	TaskID    uuid.UUID    `json:"taskId"`
	UserID    *uuid.UUID   `json:"userId,omitempty"`
	Score     float64      `json:"score,omitempty"`
	Matches   []MatchEntry `json:"matches,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
