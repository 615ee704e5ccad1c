// Package quiz owns the per-user quiz session: the in-memory question
// queue, the batch selection engine and the answer scoring rules.
package quiz

import (
	"math/rand"
	"time"

	"vocadrill/internal/domain"
	"vocadrill/internal/repository"

	"go.uber.org/zap"
)

// topLimit is how many items Top reports
const topLimit = 10

// Session holds one user's quiz state for the process lifetime.
// The question queue and last-run counters live only in memory; the
// profile is persisted through the profile repository.
type Session struct {
	user       *domain.User
	profile    *domain.QuizProfile
	vocab      repository.VocabRepository
	profiles   repository.ProfileRepository
	queryLimit int
	rnd        *rand.Rand
	logger     *zap.Logger

	queue        []domain.Question
	last         *domain.Question
	lastCorrects int
	lastMistakes int
}

// NewSession creates a session bound to the user's quiz profile
func NewSession(
	user *domain.User,
	profile *domain.QuizProfile,
	vocab repository.VocabRepository,
	profiles repository.ProfileRepository,
	queryLimit int,
	rnd *rand.Rand,
	logger *zap.Logger,
) *Session {
	return &Session{
		user:       user,
		profile:    profile,
		vocab:      vocab,
		profiles:   profiles,
		queryLimit: queryLimit,
		rnd:        rnd,
		logger:     logger,
	}
}

// IsEnabled reports whether quiz mode is on for this user
func (s *Session) IsEnabled() bool {
	return s.profile.IsEnabled
}

// Profile returns the attached quiz profile
func (s *Session) Profile() *domain.QuizProfile {
	return s.profile
}

// Last returns the most recently served question, or nil
func (s *Session) Last() *domain.Question {
	return s.last
}

// LastCorrects returns the correct-answer count of the current run
func (s *Session) LastCorrects() int {
	return s.lastCorrects
}

// LastMistakes returns the mistake count of the current run
func (s *Session) LastMistakes() int {
	return s.lastMistakes
}

// Prepare rebuilds the question queue from the current vocabulary.
// The batch is all-or-nothing: anything short of the configured count
// leaves the queue empty.
func (s *Session) Prepare() error {
	s.queue = nil
	s.last = nil
	s.lastCorrects = 0
	s.lastMistakes = 0

	algo, ok := algorithms[s.profile.Algo]
	if !ok {
		s.logger.Warn("Unknown selection algorithm, falling back to weight-only",
			zap.String("algo", s.profile.Algo),
			zap.Int64("user_id", s.user.ID),
		)
		algo = selectByWeight
	}

	items, err := algo(s)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	s.queue = buildBatch(items, s.profile.Questions, s.rnd)
	return nil
}

// Next pops the front of the queue, remembering it as the last question
func (s *Session) Next() *domain.Question {
	if len(s.queue) == 0 {
		return nil
	}

	q := s.queue[0]
	s.queue = s.queue[1:]
	s.last = &q
	return &q
}

// Enable sets the desired question count and turns quiz mode on,
// refusing when the current vocabulary cannot fill a full batch.
func (s *Session) Enable(questions int) (bool, error) {
	if s.profile.IsEnabled {
		return true, nil
	}

	s.profile.Questions = questions

	// dry run
	if err := s.Prepare(); err != nil {
		return false, err
	}
	if len(s.queue) == 0 {
		return false, nil
	}

	s.profile.IsEnabled = true
	if err := s.profiles.Save(s.profile); err != nil {
		s.profile.IsEnabled = false
		return false, err
	}
	return true, nil
}

// Disable turns quiz mode off
func (s *Session) Disable() error {
	if !s.profile.IsEnabled {
		return nil
	}

	s.profile.IsEnabled = false
	return s.profiles.Save(s.profile)
}

// SwitchAlgo toggles between the two selection variants
func (s *Session) SwitchAlgo() error {
	if s.profile.Algo == domain.AlgoWeightOnly {
		s.profile.Algo = domain.AlgoWeightAndRecency
	} else {
		s.profile.Algo = domain.AlgoWeightOnly
	}
	return s.profiles.Save(s.profile)
}

// Top returns the ten heaviest vocabulary items
func (s *Session) Top() ([]domain.VocabularyItem, error) {
	return s.vocab.Top(s.user.ID, topLimit)
}

// MarkQuized records the local date a quiz last ran on
func (s *Session) MarkQuized(date time.Time) error {
	s.profile.QuizedOn = &date
	return s.profiles.Save(s.profile)
}
