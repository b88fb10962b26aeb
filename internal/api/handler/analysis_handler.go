package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/api/validation"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/service"
	"github.com/habitflow/coach-api/pkg/problem"
)

// AnalysisHandler handles pattern analysis, prediction, and coaching
// endpoints.
type AnalysisHandler struct {
	analysisService   service.AnalysisService
	predictionService service.PredictionService
	insightService    service.InsightService
	similarityService service.SimilarityService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analysisService service.AnalysisService,
	predictionService service.PredictionService,
	insightService service.InsightService,
	similarityService service.SimilarityService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService:   analysisService,
		predictionService: predictionService,
		insightService:    insightService,
		similarityService: similarityService,
	}
}

// GetAnalysis handles GET /v1/users/{userId}/analysis
// @Summary Analyze habit patterns
// @Description Run the full behavioral analysis: time, consistency, motivation, and goal-progress patterns plus predictions and freshly generated insights. Works with any amount of data; less data means lower confidence.
// @Tags analysis
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.AnalysisResult "Full analysis result"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/analysis [get]
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.analysisService.AnalyzeHabitPatterns(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to analyze habit patterns").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetInterventionPrediction handles GET /v1/users/{userId}/predictions/intervention
// @Summary Predict intervention needs
// @Description Assess disengagement risk from recent activity. A high-urgency result schedules a coaching intervention as a side effect.
// @Tags predictions
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.InterventionPrediction "Risk assessment"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/predictions/intervention [get]
func (h *AnalysisHandler) GetInterventionPrediction(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	prediction, err := h.predictionService.PredictIntervention(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to predict intervention needs").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prediction)
}

// PredictGoalSuccess handles POST /v1/users/{userId}/predictions/goal-success
// @Summary Predict goal success
// @Description Estimate the completion likelihood of a prospective goal from difficulty, history, streak, specificity, and similar past goals.
// @Tags predictions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.GoalPredictionRequest true "Goal under evaluation"
// @Success 200 {object} domain.GoalPrediction "Success prediction"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/predictions/goal-success [post]
func (h *AnalysisHandler) PredictGoalSuccess(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.GoalPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	prediction, err := h.predictionService.PredictGoalSuccess(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to predict goal success").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prediction)
}

// GetCoachingInsights handles GET /v1/users/{userId}/coaching/insights
// @Summary Get coaching insights
// @Description Generate the qualitative coaching summary: strengths, opportunities, personalized tips, motivational factors, and behavior optimizations.
// @Tags coaching
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.CoachingInsights "Coaching summary"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/coaching/insights [get]
func (h *AnalysisHandler) GetCoachingInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.analysisService.GenerateCoachingInsights(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to generate coaching insights").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListInsights handles GET /v1/users/{userId}/insights
// @Summary List stored insights
// @Description List the user's stored insights that have not yet expired, newest first.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.InsightResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/insights [get]
func (h *AnalysisHandler) ListInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	insights, err := h.insightService.ListActive(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list insights").Write(w)
		return
	}

	responses := make([]domain.InsightResponse, len(insights))
	for i := range insights {
		responses[i] = insights[i].ToResponse()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// SearchKnowledge handles GET /v1/coaching/knowledge/search
// @Summary Search the coaching knowledge base
// @Description Semantic search over curated coaching knowledge. Only matches above the relevance threshold are returned, most similar first.
// @Tags coaching
// @Produce json
// @Param q query string true "Search query"
// @Param limit query integer false "Maximum matches to return" default(5) minimum(1) maximum(20)
// @Success 200 {array} domain.KnowledgeMatchResponse
// @Failure 400 {object} problem.Problem "Missing or invalid query"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /coaching/knowledge/search [get]
func (h *AnalysisHandler) SearchKnowledge(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		problem.BadRequest("Query parameter 'q' is required").Write(w)
		return
	}

	limit := parseIntParam(r, "limit", service.DefaultSearchLimit)
	if limit < 1 || limit > 20 {
		problem.BadRequest("limit must be between 1 and 20").Write(w)
		return
	}

	matches, err := h.similarityService.Search(r.Context(), domain.SemanticKnowledge, nil, query, service.KnowledgeSearchThreshold, limit)
	if err != nil {
		problem.InternalError("Failed to search coaching knowledge").Write(w)
		return
	}

	responses := make([]domain.KnowledgeMatchResponse, len(matches))
	for i := range matches {
		responses[i] = matches[i].ToKnowledgeResponse()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}
