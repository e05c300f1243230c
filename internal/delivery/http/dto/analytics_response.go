package dto

import "github.com/google/uuid"

type ActionStatResponse struct {
	Action   string  `json:"action"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type TopMatchResponse struct {
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Score     float64   `json:"score"`
	TaskTitle string    `json:"task_title"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type AnalyticsResponse struct {
	Period     string               `json:"period"`
	Statistics []ActionStatResponse `json:"statistics"`
	TopMatches []TopMatchResponse   `json:"top_matches"`
}
