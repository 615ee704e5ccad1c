package domain

import "time"

// Quiz selection algorithm tags
const (
	AlgoWeightOnly       = "v1"
	AlgoWeightAndRecency = "v2"
)

// DefaultRevoke is the hold value restored after a wrong answer
const DefaultRevoke = 3

// QuizProfile holds per-user quiz settings and running counters
type QuizProfile struct {
	ID        int64
	UserID    int64
	Algo      string
	Revoke    int
	Questions int
	IsEnabled bool
	Corrects  int
	Mistakes  int
	QuizedOn  *time.Time
}

// NewQuizProfile creates a disabled profile with storage defaults
func NewQuizProfile(userID int64) *QuizProfile {
	return &QuizProfile{
		UserID:    userID,
		Algo:      AlgoWeightAndRecency,
		Revoke:    DefaultRevoke,
		Questions: 15,
	}
}

// Question is a single multiple-choice quiz question. It lives only in
// process memory and is discarded once the answer is scored.
type Question struct {
	Text         string
	Lang         string
	Options      []VocabularyItem
	OptionsLang  string
	CorrectIndex int
	Item         *VocabularyItem
}

// OptionText returns the display value of option i in the options language
func (q *Question) OptionText(i int) string {
	opt := q.Options[i]
	if q.OptionsLang == opt.TextLang {
		return opt.Text
	}
	return opt.Trans
}
