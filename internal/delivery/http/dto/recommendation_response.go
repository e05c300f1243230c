package dto

import "github.com/google/uuid"

type CollaboratorResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	UserType       string    `json:"user_type"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Location       string    `json:"location"`
	Skills         []string  `json:"skills"`
	Interests      []string  `json:"interests"`
	CompletedTasks int       `json:"completed_tasks"`
	AverageRating  *float64  `json:"average_rating"`
}

type RecommendationResponse struct {
	Type  string                 `json:"type"`
	Tasks []TaskMatchResponse    `json:"tasks,omitempty"`
	Users []CollaboratorResponse `json:"users,omitempty"`
}
