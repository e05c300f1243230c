package v1

import (
	"skillbridge/internal/delivery/http/handler"
	"skillbridge/internal/delivery/http/middleware"
	"skillbridge/internal/pkg/jwt"
	"skillbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the constructed usecases into route registration so the
// wiring stays in one place.
type Deps struct {
	JWT             jwt.Service
	Matching        usecase.MatchingUsecase
	Actions         usecase.ActionUsecase
	Recommendations usecase.RecommendationUsecase
	Preferences     usecase.PreferenceUsecase
	Analytics       usecase.AnalyticsUsecase
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	// Match lookups and analytics serve sibling services without caller
	// identity; only the personalised surfaces resolve one.
	matchHandler := handler.NewMatchHandler(d.Matching, d.Actions)
	matchHandler.RegisterRoutes(r.Group("/matches"))

	analyticsHandler := handler.NewAnalyticsHandler(d.Analytics)
	analyticsHandler.RegisterRoutes(r.Group("/analytics"))

	authMw := middleware.NewAuthMiddleware(d.JWT)
	protected := r.Group("", authMw.Middleware())

	recommendationHandler := handler.NewRecommendationHandler(d.Recommendations)
	recommendationHandler.RegisterRoutes(protected.Group("/recommendations"))

	preferenceHandler := handler.NewPreferenceHandler(d.Preferences)
	preferenceHandler.RegisterRoutes(protected.Group("/preferences"))
}
