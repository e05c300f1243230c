package handler

import (
	"skillbridge/internal/delivery/http/dto"
	"skillbridge/internal/pkg/response"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	analytics usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analytics usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.GetAnalytics)
}

func (h *AnalyticsHandler) GetAnalytics(c fiber.Ctx) error {
	report, err := h.analytics.Report(c.Context(), c.Query("period"))
	if err != nil {
		return mapMatchingError(err)
	}

	out := dto.AnalyticsResponse{
		Period:     report.Period,
		Statistics: make([]dto.ActionStatResponse, 0, len(report.Statistics)),
		TopMatches: make([]dto.TopMatchResponse, 0, len(report.TopMatches)),
	}
	for _, s := range report.Statistics {
		out.Statistics = append(out.Statistics, dto.ActionStatResponse{
			Action:   s.Action,
			Count:    s.Count,
			AvgScore: s.AvgScore,
		})
	}
	for _, m := range report.TopMatches {
		out.TopMatches = append(out.TopMatches, dto.TopMatchResponse{
			TaskID:    m.TaskID,
			UserID:    m.UserID,
			Score:     m.Score,
			TaskTitle: m.TaskTitle,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
