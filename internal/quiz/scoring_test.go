package quiz

import (
	"fmt"
	"testing"
	"time"

	"vocadrill/internal/domain"
	"vocadrill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

// serveQuestion plants a four-option question with the target at index 1
func serveQuestion(sess *Session, target *domain.VocabularyItem) *domain.Question {
	options := []domain.VocabularyItem{
		enRuItem(7, "dog", "пёс"),
		*target,
		enRuItem(8, "bird", "птица"),
		enRuItem(9, "fish", "рыба"),
	}
	q := &domain.Question{
		Text:         target.Text,
		Lang:         target.TextLang,
		Options:      options,
		OptionsLang:  target.TransLang,
		CorrectIndex: 1,
		Item:         target,
	}
	sess.last = q
	return q
}

func TestScore_CorrectAnswer(t *testing.T) {
	tests := []struct {
		name           string
		weight, hold   int
		wantWeight     int
		wantHold       int
	}{
		{name: "hold decrements without touching weight", weight: 5, hold: 2, wantWeight: 5, wantHold: 1},
		{name: "weight decays only when hold expires", weight: 5, hold: 1, wantWeight: 0, wantHold: 0},
		{name: "zero hold leaves weight alone", weight: 5, hold: 0, wantWeight: 5, wantHold: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testutil.NewTestProfile(testUserID, 5)
			sess, vocab, _ := newTestSession(profile)

			target := enRuItem(1, "cat", "кот")
			target.Weight = tt.weight
			target.Hold = tt.hold
			serveQuestion(sess, &target)

			vocab.On("ApplyAnswer", &target, (*domain.VocabularyItem)(nil), profile).Return(nil)

			err := sess.Score(true, 1, testDate)

			require.NoError(t, err)
			assert.Equal(t, tt.wantWeight, target.Weight)
			assert.Equal(t, tt.wantHold, target.Hold)
			assert.Equal(t, 1, target.Appears)
			require.NotNil(t, target.LastAppear)
			assert.Equal(t, testDate, *target.LastAppear)
			assert.Equal(t, 1, profile.Corrects)
			assert.Equal(t, 1, sess.LastCorrects())
			vocab.AssertExpectations(t)
		})
	}
}

func TestScore_WrongAnswerPunishesTargetAndChosen(t *testing.T) {
	profile := testutil.NewTestProfile(testUserID, 5)
	sess, vocab, _ := newTestSession(profile)

	target := enRuItem(1, "cat", "кот")
	target.Weight = 2
	serveQuestion(sess, &target)

	var chosen *domain.VocabularyItem
	vocab.On("ApplyAnswer", &target, mock.Anything, profile).
		Run(func(args mock.Arguments) {
			chosen = args.Get(1).(*domain.VocabularyItem)
		}).
		Return(nil)

	err := sess.Score(false, 0, testDate)

	require.NoError(t, err)
	assert.Equal(t, 3, target.Weight)
	assert.Equal(t, domain.DefaultRevoke, target.Hold)
	assert.Equal(t, 1, target.Appears)
	assert.Equal(t, 1, profile.Mistakes)
	assert.Equal(t, 1, sess.LastMistakes())

	// the confuser at index 0 gets the same treatment
	require.NotNil(t, chosen)
	assert.Equal(t, int64(7), chosen.ID)
	assert.Equal(t, 1, chosen.Weight)
	assert.Equal(t, domain.DefaultRevoke, chosen.Hold)
}

func TestScore_SkippedQuestionHasNoChosenOption(t *testing.T) {
	profile := testutil.NewTestProfile(testUserID, 5)
	sess, vocab, _ := newTestSession(profile)

	target := enRuItem(1, "cat", "кот")
	serveQuestion(sess, &target)

	vocab.On("ApplyAnswer", &target, (*domain.VocabularyItem)(nil), profile).Return(nil)

	err := sess.Score(false, -1, testDate)

	require.NoError(t, err)
	assert.Equal(t, 1, target.Weight)
	assert.Equal(t, domain.DefaultRevoke, target.Hold)
	vocab.AssertExpectations(t)
}

func TestScore_RevokeCycle(t *testing.T) {
	// a wrong answer with revoke=3 protects the weight for exactly
	// three correct answers, then zeroes it
	profile := testutil.NewTestProfile(testUserID, 5)
	sess, vocab, _ := newTestSession(profile)

	target := enRuItem(1, "cat", "кот")
	target.Weight = 4
	serveQuestion(sess, &target)

	vocab.On("ApplyAnswer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, sess.Score(false, 0, testDate))
	assert.Equal(t, 5, target.Weight)
	assert.Equal(t, 3, target.Hold)

	require.NoError(t, sess.Score(true, 1, testDate))
	assert.Equal(t, 5, target.Weight)
	assert.Equal(t, 2, target.Hold)

	require.NoError(t, sess.Score(true, 1, testDate))
	assert.Equal(t, 5, target.Weight)
	assert.Equal(t, 1, target.Hold)

	require.NoError(t, sess.Score(true, 1, testDate))
	assert.Equal(t, 0, target.Weight)
	assert.Equal(t, 0, target.Hold)
}

func TestScore_NoQuestionServed(t *testing.T) {
	profile := testutil.NewTestProfile(testUserID, 5)
	sess, _, _ := newTestSession(profile)

	err := sess.Score(true, 0, testDate)

	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestScore_WriteFailurePropagates(t *testing.T) {
	profile := testutil.NewTestProfile(testUserID, 5)
	sess, vocab, _ := newTestSession(profile)

	target := enRuItem(1, "cat", "кот")
	serveQuestion(sess, &target)

	vocab.On("ApplyAnswer", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("constraint violation"))

	err := sess.Score(true, 1, testDate)

	assert.Error(t, err)
}
