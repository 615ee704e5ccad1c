package testutil

import (
	"vocadrill/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user in the given state
func NewTestUser(userID int64, state domain.State) *domain.User {
	u := domain.NewUser(userID)
	u.State = state
	return u
}

// NewTestItem creates a vocabulary item with an en->ru language pair
func NewTestItem(id, userID int64, text, trans string, weight int) domain.VocabularyItem {
	return domain.VocabularyItem{
		ID:        id,
		UserID:    userID,
		Text:      text,
		TextLang:  "en",
		Trans:     trans,
		TransLang: "ru",
		Weight:    weight,
	}
}

// NewTestProfile creates an enabled quiz profile
func NewTestProfile(userID int64, questions int) *domain.QuizProfile {
	p := domain.NewQuizProfile(userID)
	p.Questions = questions
	p.IsEnabled = true
	return p
}

// NewTestSystem creates a system config with storage defaults
func NewTestSystem() *domain.SystemConfig {
	return &domain.SystemConfig{
		ID:                  domain.SystemConfigID,
		MaxWordCount:        5,
		MaxWordLen:          32,
		MaxTextLen:          192,
		MinQuestions:        10,
		MaxQuestions:        20,
		PollingIntervalMins: 180,
		QuizQueryLimit:      1000,
		UserBanTimeMins:     3,
		QuietStartHour:      9,
		QuietEndHour:        21,
	}
}
