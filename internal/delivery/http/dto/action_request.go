package dto

type MatchActionRequest struct {
	Action string `json:"action"`
}
