package handler

import (
	"fmt"
	"strconv"
	"time"

	"vocadrill/internal/domain"
	"vocadrill/internal/timeutil"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// pollTTL bounds how long an unanswered quiz poll stays correlatable
const pollTTL = 24 * time.Hour

// pollRef ties a Telegram poll ID back to the user whose quiz served it
// and the number the next question will carry.
type pollRef struct {
	userID    int64
	messageID int
	number    int
	created   time.Time
}

// pollTable maps poll IDs to quiz sessions. Entries outlive a poll
// update cycle, so stale ones are pruned on every insert.
type pollTable struct {
	refs map[string]pollRef
}

func newPollTable() *pollTable {
	return &pollTable{refs: make(map[string]pollRef)}
}

func (t *pollTable) put(id string, ref pollRef) {
	for k, v := range t.refs {
		if ref.created.Sub(v.created) > pollTTL {
			delete(t.refs, k)
		}
	}
	t.refs[id] = ref
}

func (t *pollTable) get(id string) (pollRef, bool) {
	ref, ok := t.refs[id]
	return ref, ok
}

func (t *pollTable) remove(id string) {
	delete(t.refs, id)
}

// sendQuestion serves one question as a Telegram quiz poll and records
// the poll ID so the answer update can be routed back to the session.
func (h *Handler) sendQuestion(user *domain.User, q *domain.Question, number int) error {
	total := h.session(user.ID).Profile().Questions

	poll := &tele.Poll{
		Type:          tele.PollQuiz,
		Question:      fmt.Sprintf("[%d/%d] %s", number, total, q.Text),
		CorrectOption: q.CorrectIndex,
	}
	opts := make([]string, 0, len(q.Options))
	for i := range q.Options {
		opts = append(opts, q.OptionText(i))
	}
	poll.AddOptions(opts...)

	msg, err := h.bot.Send(tele.ChatID(user.ID), poll)
	if err != nil {
		return fmt.Errorf("send question poll: %w", err)
	}

	h.polls.put(msg.Poll.ID, pollRef{
		userID:    user.ID,
		messageID: msg.ID,
		number:    number + 1,
		created:   time.Now(),
	})
	return nil
}

// handlePoll routes a poll state update back to the quiz that produced
// it. The first vote closes the poll; the closed update scores the
// answer and serves the next question or wraps the quiz up.
func (h *Handler) handlePoll(c tele.Context) error {
	p := c.Poll()

	ref, ok := h.polls.get(p.ID)
	if !ok {
		return nil
	}

	if !p.Closed {
		if p.VoterCount < 1 {
			return nil
		}
		_, err := h.bot.StopPoll(tele.StoredMessage{
			MessageID: strconv.Itoa(ref.messageID),
			ChatID:    ref.userID,
		})
		if err != nil {
			return fmt.Errorf("stop poll: %w", err)
		}
		return nil
	}

	h.polls.remove(p.ID)

	user, ok := h.userCache[ref.userID]
	if !ok || user.State != domain.StateQuiz {
		return nil
	}
	sess := h.session(ref.userID)

	last := sess.Last()
	if last == nil {
		return nil
	}

	correct := p.Options[last.CorrectIndex].VoterCount > 0
	chosen := -1
	for i, opt := range p.Options {
		if opt.VoterCount > 0 {
			chosen = i
			break
		}
	}

	if err := sess.Score(correct, chosen, timeutil.UserDate(user.TZOffset)); err != nil {
		h.forceNext(user)
		return fmt.Errorf("score answer: %w", err)
	}

	if next := sess.Next(); next != nil {
		if err := h.sendQuestion(user, next, ref.number); err != nil {
			h.forceNext(user)
			return err
		}
		return nil
	}

	if err := h.setState(user, domain.StateNext); err != nil {
		return err
	}
	h.scheduler.ArmQuizTrigger(user.ID)

	h.logger.Info("Quiz finished",
		zap.Int64("user_id", user.ID),
		zap.Int("corrects", sess.LastCorrects()),
		zap.Int("mistakes", sess.LastMistakes()),
	)
	_, err := h.bot.Send(tele.ChatID(user.ID), fmt.Sprintf(
		"That is it. %d correct, %d wrong.",
		sess.LastCorrects(), sess.LastMistakes(),
	))
	return err
}
