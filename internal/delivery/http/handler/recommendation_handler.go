package handler

import (
	"skillbridge/internal/delivery/http/dto"
	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/pkg/response"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	recommendations usecase.RecommendationUsecase
}

func NewRecommendationHandler(recommendations usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	recType := c.Query("type")
	limit := parseQueryInt(c, "limit", 0)

	recs, err := h.recommendations.Recommend(c.Context(), userID, recType, limit)
	if err != nil {
		return mapMatchingError(err)
	}

	out := dto.RecommendationResponse{Type: recs.Type}
	for _, t := range recs.Tasks {
		out.Tasks = append(out.Tasks, taskMatchResponse(t))
	}
	for _, u := range recs.Users {
		out.Users = append(out.Users, dto.CollaboratorResponse{
			UserID:         u.UserID,
			UserType:       string(u.Role),
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Location:       u.Location,
			Skills:         u.Skills,
			Interests:      u.Interests,
			CompletedTasks: u.CompletedTasks,
			AverageRating:  u.AverageRating,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
