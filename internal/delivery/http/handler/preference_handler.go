package handler

import (
	"skillbridge/internal/delivery/http/dto"
	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/domain/match"
	"skillbridge/internal/pkg/response"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PreferenceHandler struct {
	preferences usecase.PreferenceUsecase
}

func NewPreferenceHandler(preferences usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

func (h *PreferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Put("/", h.PutPreferences)
}

func (h *PreferenceHandler) PutPreferences(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.PreferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.preferences.SavePreferences(c.Context(), match.Preferences{
		UserID:                 userID,
		PreferredCategories:    req.PreferredCategories,
		PreferredSkills:        req.PreferredSkills,
		LocationPreference:     req.LocationPreference,
		AvailabilityPreference: req.AvailabilityPreference,
	})
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, "Preferences updated", fiber.Map{
		"user_id": userID,
	})
}
