package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow/coach-api/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 40

// Run seeds the database with sample users, check-ins, goals, and
// conversation turns. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.CheckIn{}, &domain.Goal{}, &domain.ConversationTurn{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), DisplayName: "Ava", Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), DisplayName: "Marcus", Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), DisplayName: "Yuki", Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), DisplayName: "Nina", Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedCheckInsForUser(db, user, rng); err != nil {
			return err
		}
		if err := seedGoalsForUser(db, user, rng); err != nil {
			return err
		}
		if err := seedConversationsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedCheckInsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	wins := []string{
		"Finished my morning workout before work",
		"Stayed focused through a long afternoon",
		"Got through my reading list for the week",
		"Kept my evening routine on track",
	}
	challenges := []string{
		"Felt stuck on the same task for hours",
		"Too tired to do anything after dinner",
		"Work meetings ran over and ate my free time",
		"Hard to stay motivated in the rain",
	}

	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		// Leave occasional gaps so streak and consistency patterns vary.
		if rng.Float32() < 0.2 {
			continue
		}

		date := now.AddDate(0, 0, -i)
		at := time.Date(date.Year(), date.Month(), date.Day(), 7+rng.Intn(3), rng.Intn(60), 0, 0, time.UTC)

		clientReqID := fmt.Sprintf("seed-checkin-%s-%d", user.ID, i)
		checkIn := domain.CheckIn{
			UserID:          user.ID,
			Mood:            2 + rng.Intn(4),
			Energy:          2 + rng.Intn(4),
			Stress:          1 + rng.Intn(4),
			Wins:            wins[rng.Intn(len(wins))],
			Challenges:      challenges[rng.Intn(len(challenges))],
			ClientRequestID: &clientReqID,
			CreatedAt:       at,
		}

		if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&checkIn).Error; err != nil {
			return fmt.Errorf("failed to create check-in: %w", err)
		}
	}
	return nil
}

func seedGoalsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	goals := []domain.Goal{
		{Title: "Run three times per week", Description: "Build a sustainable running habit with short morning runs", Category: "fitness"},
		{Title: "Read 12 books this year", Description: "One book a month, mostly non-fiction", Category: "learning"},
		{Title: "Daily ten-minute meditation", Description: "Short mindfulness session before breakfast", Category: "wellbeing"},
	}

	for i, goal := range goals {
		goal.ID = deterministicUUID(fmt.Sprintf("seed-goal-%s-%d", user.ID, i))
		goal.UserID = user.ID
		goal.Progress = float64(rng.Intn(11) * 10)
		goal.Status = domain.GoalStatusActive
		if goal.Progress >= 100 {
			goal.Status = domain.GoalStatusCompleted
		}

		if err := db.Where("id = ?", goal.ID).FirstOrCreate(&goal).Error; err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
	}
	return nil
}

func seedConversationsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	exchanges := []struct {
		message   string
		sender    domain.Sender
		sentiment float64
	}{
		{"I feel really motivated after this morning's run", domain.SenderUser, 0.8},
		{"That's great momentum. What made today's run click?", domain.SenderCoach, 0.3},
		{"Listening to music helped me push through the last mile", domain.SenderUser, 0.6},
		{"I'm feeling stuck with my reading goal, can't find the time", domain.SenderUser, -0.5},
		{"Try pairing reading with an existing habit, like your commute", domain.SenderCoach, 0.2},
		{"Work has been exhausting, I skipped meditation twice this week", domain.SenderUser, -0.4},
	}

	now := time.Now().UTC()
	for i, ex := range exchanges {
		id := deterministicUUID(fmt.Sprintf("seed-turn-%s-%d", user.ID, i))
		sentiment := ex.sentiment
		turn := domain.ConversationTurn{
			ID:        id,
			UserID:    user.ID,
			Message:   ex.message,
			Sender:    ex.sender,
			Sentiment: &sentiment,
			CreatedAt: now.AddDate(0, 0, -rng.Intn(14)),
		}

		if err := db.Where("id = ?", id).FirstOrCreate(&turn).Error; err != nil {
			return fmt.Errorf("failed to create conversation turn: %w", err)
		}
	}
	return nil
}

// deterministicUUID derives a stable UUID from a seed key so reruns
// upsert instead of duplicating rows.
func deterministicUUID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}
