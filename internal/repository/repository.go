package repository

import (
	"vocadrill/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	Get(userID int64) (*domain.User, error)
	Save(user *domain.User) error
	SetState(userID int64, state domain.State) error
	All() ([]domain.User, error)
	ResetQuota(userID int64) error
}

// VocabRepository defines vocabulary data operations
type VocabRepository interface {
	ByWeight(userID int64, limit int) ([]domain.VocabularyItem, error)
	Top(userID int64, limit int) ([]domain.VocabularyItem, error)
	Find(userID int64, text, textLang, transLang string) (*domain.VocabularyItem, error)
	Save(item *domain.VocabularyItem) error
	// ApplyAnswer commits the answered item, the mistakenly chosen option
	// (nil when none) and the profile counters as one transaction.
	ApplyAnswer(target, chosen *domain.VocabularyItem, profile *domain.QuizProfile) error
}

// ProfileRepository defines quiz profile operations
type ProfileRepository interface {
	ByUser(userID int64) (*domain.QuizProfile, error)
	Save(profile *domain.QuizProfile) error
}

// SystemRepository loads the runtime limits singleton
type SystemRepository interface {
	Get() (*domain.SystemConfig, error)
}

// LangRepository lists supported languages
type LangRepository interface {
	All() ([]domain.Lang, error)
	ByCode(code string) (*domain.Lang, error)
}
