package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSenior Role = "senior"
	RoleYouth  Role = "youth"
)

func (r Role) Valid() bool {
	return r == RoleSenior || r == RoleYouth
}

// Opposite implements the platform's pairing rule: seniors are matched
// against youths and vice versa.
func (r Role) Opposite() Role {
	if r == RoleSenior {
		return RoleYouth
	}
	return RoleSenior
}

// TimeWindow is one declared availability slot.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// UserProfile is the engine's read-only view of an account-service user.
type UserProfile struct {
	ID           uuid.UUID
	Role         Role
	FirstName    string
	LastName     string
	Skills       []string
	Interests    []string
	Location     string
	Availability []TimeWindow
	Active       bool
	CreatedAt    time.Time
}

// History is the derived per-user engagement aggregate. AverageRating is nil
// when the user has never been rated; a zero LastActivity means no recorded
// activity and yields no recency adjustment.
type History struct {
	CompletedTasks int
	AverageRating  *float64
	LastActivity   time.Time
}
