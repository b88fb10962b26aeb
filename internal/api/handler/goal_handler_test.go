package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
)

func TestGoalHandler_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		body           string
		mockService    *MockGoalService
		wantStatusCode int
	}{
		{
			name:           "valid goal",
			userID:         userID.String(),
			body:           `{"title": "Run a 10k", "description": "Train three times per week"}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing title",
			userID:         userID.String(),
			body:           `{"description": "no title here"}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			userID:         userID.String(),
			body:           `{title}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			userID: uuid.New().String(),
			body:   `{"title": "Run a 10k"}`,
			mockService: &MockGoalService{
				createFunc: func(ctx context.Context, uid uuid.UUID, req *domain.CreateGoalRequest) (*domain.Goal, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			body:           `{"title": "Run a 10k"}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewGoalHandler(tt.mockService)

			req := newRequestWithUserID(http.MethodPost, "/v1/users/"+tt.userID+"/goals", tt.userID, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Create() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				var response domain.GoalResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Errorf("Failed to decode response: %v", err)
				}
				if response.Category != domain.DefaultGoalCategory {
					t.Errorf("Category = %q, want %q", response.Category, domain.DefaultGoalCategory)
				}
			}
		})
	}
}

func TestGoalHandler_List(t *testing.T) {
	userID := uuid.New()

	handler := NewGoalHandler(&MockGoalService{
		listFunc: func(ctx context.Context, uid uuid.UUID) ([]domain.Goal, error) {
			return []domain.Goal{
				{ID: uuid.New(), UserID: uid, Title: "Run a 10k", Category: "fitness", Status: domain.GoalStatusActive},
				{ID: uuid.New(), UserID: uid, Title: "Read 12 books", Category: "learning", Status: domain.GoalStatusActive},
			}, nil
		},
	})

	req := newRequestWithUserID(http.MethodGet, "/v1/users/"+userID.String()+"/goals", userID.String(), nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("List() status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var responses []domain.GoalResponse
	if err := json.NewDecoder(rec.Body).Decode(&responses); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(responses) != 2 {
		t.Errorf("len(responses) = %d, want 2", len(responses))
	}
}

func TestGoalHandler_UpdateProgress(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		goalID         string
		body           string
		mockService    *MockGoalService
		wantStatusCode int
	}{
		{
			name:           "valid update",
			userID:         userID.String(),
			goalID:         goalID.String(),
			body:           `{"progress": 60}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "progress above 100",
			userID:         userID.String(),
			goalID:         goalID.String(),
			body:           `{"progress": 150}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "goal not found",
			userID: userID.String(),
			goalID: uuid.New().String(),
			body:   `{"progress": 60}`,
			mockService: &MockGoalService{
				updateProgressFunc: func(ctx context.Context, uid uuid.UUID, gid uuid.UUID, req *domain.UpdateGoalProgressRequest) (*domain.Goal, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid goal ID",
			userID:         userID.String(),
			goalID:         "not-a-uuid",
			body:           `{"progress": 60}`,
			mockService:    &MockGoalService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewGoalHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPatch, "/v1/users/"+tt.userID+"/goals/"+tt.goalID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			rctx.URLParams.Add("goalId", tt.goalID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.UpdateProgress(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("UpdateProgress() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
