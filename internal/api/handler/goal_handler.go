package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/api/validation"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/service"
	"github.com/habitflow/coach-api/pkg/problem"
)

type GoalHandler struct {
	service service.GoalService
}

func NewGoalHandler(service service.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// Create handles POST /v1/users/{userId}/goals
// @Summary Create a goal
// @Description Create a personal goal. Category defaults to "general" when omitted.
// @Tags goals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateGoalRequest true "Goal data"
// @Success 201 {object} domain.GoalResponse
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals [post]
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	goal, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to create goal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(goal.ToResponse())
}

// List handles GET /v1/users/{userId}/goals
// @Summary List goals
// @Description List all goals for a user, most recently updated first.
// @Tags goals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.GoalResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals [get]
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	goals, err := h.service.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list goals").Write(w)
		return
	}

	responses := make([]domain.GoalResponse, len(goals))
	for i := range goals {
		responses[i] = goals[i].ToResponse()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// UpdateProgress handles PATCH /v1/users/{userId}/goals/{goalId}
// @Summary Update goal progress
// @Description Update a goal's progress percentage. Reaching 100 marks the goal completed.
// @Tags goals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param goalId path string true "Goal UUID" format(uuid)
// @Param request body domain.UpdateGoalProgressRequest true "Progress update"
// @Success 200 {object} domain.GoalResponse
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User or goal not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals/{goalId} [patch]
func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	goalID, err := uuid.Parse(chi.URLParam(r, "goalId"))
	if err != nil {
		problem.BadRequest("Invalid goal ID format").Write(w)
		return
	}

	var req domain.UpdateGoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	goal, err := h.service.UpdateProgress(r.Context(), userID, goalID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Goal not found").Write(w)
			return
		}
		problem.InternalError("Failed to update goal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goal.ToResponse())
}
