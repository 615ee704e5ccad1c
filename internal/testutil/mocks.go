package testutil

import (
	"vocadrill/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Save(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SetState(userID int64, state domain.State) error {
	args := m.Called(userID, state)
	return args.Error(0)
}

func (m *MockUserRepository) All() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ResetQuota(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockVocabRepository is a mock for VocabRepository
type MockVocabRepository struct {
	mock.Mock
}

func (m *MockVocabRepository) ByWeight(userID int64, limit int) ([]domain.VocabularyItem, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyItem), args.Error(1)
}

func (m *MockVocabRepository) Top(userID int64, limit int) ([]domain.VocabularyItem, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyItem), args.Error(1)
}

func (m *MockVocabRepository) Find(userID int64, text, textLang, transLang string) (*domain.VocabularyItem, error) {
	args := m.Called(userID, text, textLang, transLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VocabularyItem), args.Error(1)
}

func (m *MockVocabRepository) Save(item *domain.VocabularyItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockVocabRepository) ApplyAnswer(target, chosen *domain.VocabularyItem, profile *domain.QuizProfile) error {
	args := m.Called(target, chosen, profile)
	return args.Error(0)
}

// MockProfileRepository is a mock for ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ByUser(userID int64) (*domain.QuizProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizProfile), args.Error(1)
}

func (m *MockProfileRepository) Save(profile *domain.QuizProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// MockSystemRepository is a mock for SystemRepository
type MockSystemRepository struct {
	mock.Mock
}

func (m *MockSystemRepository) Get() (*domain.SystemConfig, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemConfig), args.Error(1)
}

// MockLangRepository is a mock for LangRepository
type MockLangRepository struct {
	mock.Mock
}

func (m *MockLangRepository) All() ([]domain.Lang, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lang), args.Error(1)
}

func (m *MockLangRepository) ByCode(code string) (*domain.Lang, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lang), args.Error(1)
}
