package task

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusPublished  Status = "published"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
)

// TaskProfile is the engine's read-only view of a task-service task.
// CreatorRole is denormalized from the creator's user row because every
// matching pass needs it for opposite-role pairing.
type TaskProfile struct {
	ID             uuid.UUID
	CreatedBy      uuid.UUID
	CreatorRole    string
	Title          string
	Description    string
	Category       string
	Tags           []string
	SkillsRequired []string
	Location       string
	IsVirtual      bool
	ScheduledDate  *time.Time
	Status         Status
	CreatedAt      time.Time
}
