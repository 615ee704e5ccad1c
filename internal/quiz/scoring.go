package quiz

import (
	"errors"
	"time"

	"vocadrill/internal/domain"
)

// ErrNoQuestion is returned when an answer arrives with no question served
var ErrNoQuestion = errors.New("quiz: no question to score")

// Score applies one answer outcome to the last served question.
//
// A correct answer decrements the item's hold countdown; only when the
// countdown expires this way does the weight decay to zero. A wrong
// answer raises the target's weight, restores its hold to the profile's
// revoke value and punishes the mistakenly chosen option the same way.
// All writes commit as one transaction; failures propagate.
func (s *Session) Score(correct bool, chosenIndex int, localDate time.Time) error {
	if s.last == nil || s.last.Item == nil {
		return ErrNoQuestion
	}

	q := s.last
	target := q.Item

	var chosen *domain.VocabularyItem

	if correct {
		s.profile.Corrects++
		s.lastCorrects++

		if target.Hold > 0 {
			target.Hold--
			if target.Hold == 0 {
				target.Weight = 0
			}
		}
	} else {
		s.profile.Mistakes++
		s.lastMistakes++

		target.Weight++
		target.Hold = s.profile.Revoke

		// resurface the confuser sooner too
		if chosenIndex >= 0 && chosenIndex < len(q.Options) && chosenIndex != q.CorrectIndex {
			opt := q.Options[chosenIndex]
			opt.Weight++
			opt.Hold = s.profile.Revoke
			chosen = &opt
		}
	}

	target.Appears++
	date := localDate
	target.LastAppear = &date

	return s.vocab.ApplyAnswer(target, chosen, s.profile)
}
