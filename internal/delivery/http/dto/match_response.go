package dto

import (
	"time"

	"github.com/google/uuid"
)

type BreakdownResponse struct {
	Skills       float64 `json:"skills"`
	Interests    float64 `json:"interests"`
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
	Engagement   float64 `json:"engagement"`
}

type CandidateMatchResponse struct {
	UserID    uuid.UUID         `json:"user_id"`
	UserType  string            `json:"user_type"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Location  string            `json:"location"`
	Skills    []string          `json:"skills"`
	Interests []string          `json:"interests"`
	Score     float64           `json:"score"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

type TaskMatchResponse struct {
	TaskID        uuid.UUID         `json:"task_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Location      string            `json:"location"`
	IsVirtual     bool              `json:"is_virtual"`
	ScheduledDate *time.Time        `json:"scheduled_date"`
	CreatorType   string            `json:"creator_type"`
	Score         float64           `json:"score"`
	Breakdown     BreakdownResponse `json:"breakdown"`
}

type CandidateMatchListResponse struct {
	TaskID  uuid.UUID                `json:"task_id"`
	Matches []CandidateMatchResponse `json:"matches"`
	Count   int                      `json:"count"`
}

type TaskMatchListResponse struct {
	UserID  uuid.UUID           `json:"user_id"`
	Matches []TaskMatchResponse `json:"matches"`
	Count   int                 `json:"count"`
}
