package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"github.com/habitflow/coach-api/internal/notify"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockCheckInRepository is a mock implementation of CheckInRepository
type MockCheckInRepository struct {
	checkIns        map[uuid.UUID]*domain.CheckIn
	clientRequestID map[string]*domain.CheckIn
	err             error
}

func NewMockCheckInRepository() *MockCheckInRepository {
	return &MockCheckInRepository{
		checkIns:        make(map[uuid.UUID]*domain.CheckIn),
		clientRequestID: make(map[string]*domain.CheckIn),
	}
}

func (m *MockCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	if m.err != nil {
		return m.err
	}
	if checkIn.ID == uuid.Nil {
		checkIn.ID = uuid.New()
	}
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now()
	}
	m.checkIns[checkIn.ID] = checkIn
	if checkIn.ClientRequestID != nil {
		key := checkIn.UserID.String() + ":" + *checkIn.ClientRequestID
		m.clientRequestID[key] = checkIn
	}
	return nil
}

func (m *MockCheckInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	if m.err != nil {
		return nil, m.err
	}
	checkIn, ok := m.checkIns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return checkIn, nil
}

func (m *MockCheckInRepository) List(ctx context.Context, userID uuid.UUID, filter domain.CheckInFilter) ([]domain.CheckIn, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sortedForUser(userID), nil
}

func (m *MockCheckInRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CheckIn, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := m.sortedForUser(userID)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockCheckInRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, c := range m.checkIns {
		if c.UserID == userID && !c.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockCheckInRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.CheckIn, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := userID.String() + ":" + clientRequestID
	checkIn, ok := m.clientRequestID[key]
	if !ok {
		return nil, nil
	}
	return checkIn, nil
}

func (m *MockCheckInRepository) sortedForUser(userID uuid.UUID) []domain.CheckIn {
	var result []domain.CheckIn
	for _, c := range m.checkIns {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (m *MockCheckInRepository) SetError(err error) {
	m.err = err
}

// MockGoalRepository is a mock implementation of GoalRepository
type MockGoalRepository struct {
	goals map[uuid.UUID]*domain.Goal
	err   error
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		goals: make(map[uuid.UUID]*domain.Goal),
	}
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if m.err != nil {
		return m.err
	}
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	goal, ok := m.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return goal, nil
}

func (m *MockGoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if m.err != nil {
		return m.err
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MockGoalRepository) SetError(err error) {
	m.err = err
}

// MockConversationRepository is a mock implementation of ConversationRepository
type MockConversationRepository struct {
	turns []domain.ConversationTurn
	err   error
}

func NewMockConversationRepository() *MockConversationRepository {
	return &MockConversationRepository{}
}

func (m *MockConversationRepository) Create(ctx context.Context, turn *domain.ConversationTurn) error {
	if m.err != nil {
		return m.err
	}
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	m.turns = append(m.turns, *turn)
	return nil
}

func (m *MockConversationRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ConversationTurn, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.ConversationTurn
	for _, t := range m.turns {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockConversationRepository) SetError(err error) {
	m.err = err
}

// MockInsightRepository is a mock implementation of InsightRepository
type MockInsightRepository struct {
	insights []domain.Insight
	err      error
}

func NewMockInsightRepository() *MockInsightRepository {
	return &MockInsightRepository{}
}

func (m *MockInsightRepository) Create(ctx context.Context, insight *domain.Insight) error {
	if m.err != nil {
		return m.err
	}
	m.insights = append(m.insights, *insight)
	return nil
}

func (m *MockInsightRepository) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Insight, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Insight
	for _, i := range m.insights {
		if i.UserID == userID && i.ExpiresAt.After(now) {
			result = append(result, i)
		}
	}
	return result, nil
}

func (m *MockInsightRepository) SetError(err error) {
	m.err = err
}

// MockSemanticRepository is a mock implementation of SemanticRepository
type MockSemanticRepository struct {
	entries map[string]*domain.SemanticEntry
	err     error
}

func NewMockSemanticRepository() *MockSemanticRepository {
	return &MockSemanticRepository{
		entries: make(map[string]*domain.SemanticEntry),
	}
}

func (m *MockSemanticRepository) Upsert(ctx context.Context, entry *domain.SemanticEntry) error {
	if m.err != nil {
		return m.err
	}
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockSemanticRepository) ListByKind(ctx context.Context, kind domain.SemanticKind, userID *uuid.UUID) ([]domain.SemanticEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SemanticEntry
	for _, e := range m.entries {
		if e.Kind != kind {
			continue
		}
		if userID != nil && (e.UserID == nil || *e.UserID != *userID) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *MockSemanticRepository) SetError(err error) {
	m.err = err
}

// MockNotifier records scheduled interventions.
type MockNotifier struct {
	scheduled []notify.Intervention
	err       error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) ScheduleIntervention(ctx context.Context, in notify.Intervention) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, in)
	return nil
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
