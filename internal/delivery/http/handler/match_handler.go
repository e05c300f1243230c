package handler

import (
	"errors"
	"strconv"

	"skillbridge/internal/delivery/http/dto"
	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/domain/scoring"
	"skillbridge/internal/pkg/response"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matching usecase.MatchingUsecase
	actions  usecase.ActionUsecase
}

func NewMatchHandler(matching usecase.MatchingUsecase, actions usecase.ActionUsecase) *MatchHandler {
	return &MatchHandler{matching: matching, actions: actions}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/task/:task_id", h.GetTaskMatches)
	r.Get("/user/:user_id", h.GetUserMatches)
	r.Post("/:match_id/action", h.PostAction)
}

func (h *MatchHandler) GetTaskMatches(c fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid task id", nil, err)
	}
	limit := parseQueryInt(c, "limit", 0)

	matches, err := h.matching.MatchCandidatesForTask(c.Context(), taskID, limit)
	if err != nil {
		return mapMatchingError(err)
	}

	out := dto.CandidateMatchListResponse{
		TaskID:  taskID,
		Matches: make([]dto.CandidateMatchResponse, 0, len(matches)),
		Count:   len(matches),
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, dto.CandidateMatchResponse{
			UserID:    m.UserID,
			UserType:  string(m.Role),
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Location:  m.Location,
			Skills:    m.Skills,
			Interests: m.Interests,
			Score:     m.Score,
			Breakdown: breakdownResponse(m.Breakdown),
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) GetUserMatches(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	limit := parseQueryInt(c, "limit", 0)

	matches, err := h.matching.MatchTasksForUser(c.Context(), userID, limit)
	if err != nil {
		return mapMatchingError(err)
	}

	out := dto.TaskMatchListResponse{
		UserID:  userID,
		Matches: make([]dto.TaskMatchResponse, 0, len(matches)),
		Count:   len(matches),
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, taskMatchResponse(m))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) PostAction(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	var req dto.MatchActionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.actions.RecordAction(c.Context(), matchID, match.Action(req.Action)); err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"match_id": matchID,
		"action":   req.Action,
	})
}

func breakdownResponse(b scoring.Breakdown) dto.BreakdownResponse {
	return dto.BreakdownResponse{
		Skills:       b.Skills,
		Interests:    b.Interests,
		Location:     b.Location,
		Availability: b.Availability,
		Engagement:   b.Engagement,
	}
}

func taskMatchResponse(m usecase.TaskMatch) dto.TaskMatchResponse {
	return dto.TaskMatchResponse{
		TaskID:        m.TaskID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Location:      m.Location,
		IsVirtual:     m.IsVirtual,
		ScheduledDate: m.ScheduledDate,
		CreatorType:   m.CreatorRole,
		Score:         m.Score,
		Breakdown:     breakdownResponse(m.Breakdown),
	}
}

func mapMatchingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidAction):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
