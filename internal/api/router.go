package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/habitflow/coach-api/internal/api/handler"
	"github.com/habitflow/coach-api/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/habitflow/coach-api/docs"
)

type Router struct {
	userHandler         *handler.UserHandler
	checkInHandler      *handler.CheckInHandler
	goalHandler         *handler.GoalHandler
	conversationHandler *handler.ConversationHandler
	analysisHandler     *handler.AnalysisHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	checkInHandler *handler.CheckInHandler,
	goalHandler *handler.GoalHandler,
	conversationHandler *handler.ConversationHandler,
	analysisHandler *handler.AnalysisHandler,
) *Router {
	return &Router{
		userHandler:         userHandler,
		checkInHandler:      checkInHandler,
		goalHandler:         goalHandler,
		conversationHandler: conversationHandler,
		analysisHandler:     analysisHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Check-ins (nested under users)
			r.Route("/{userId}/check-ins", func(r chi.Router) {
				r.Post("/", rt.checkInHandler.Create)
				r.Get("/", rt.checkInHandler.List)
			})

			// Goals
			r.Route("/{userId}/goals", func(r chi.Router) {
				r.Post("/", rt.goalHandler.Create)
				r.Get("/", rt.goalHandler.List)
				r.Patch("/{goalId}", rt.goalHandler.UpdateProgress)
			})

			// Conversations
			r.Route("/{userId}/conversations", func(r chi.Router) {
				r.Post("/", rt.conversationHandler.Create)
				r.Get("/", rt.conversationHandler.List)
			})

			// Analysis, predictions, and coaching
			r.Get("/{userId}/analysis", rt.analysisHandler.GetAnalysis)
			r.Get("/{userId}/predictions/intervention", rt.analysisHandler.GetInterventionPrediction)
			r.Post("/{userId}/predictions/goal-success", rt.analysisHandler.PredictGoalSuccess)
			r.Get("/{userId}/coaching/insights", rt.analysisHandler.GetCoachingInsights)
			r.Get("/{userId}/insights", rt.analysisHandler.ListInsights)
		})

		// Coaching knowledge base
		r.Get("/coaching/knowledge/search", rt.analysisHandler.SearchKnowledge)
	})

	return r
}
