package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vocadrill/internal/domain"
	"vocadrill/internal/timeutil"
	"vocadrill/internal/translator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free text by conversation state
func (h *Handler) handleText(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	text := strings.TrimSpace(c.Text())

	// commands without a registered handler land here
	if strings.HasPrefix(text, "/") {
		return c.Send(msgUnknownCommand)
	}

	switch user.State {
	case domain.StateInit:
		return c.Send(msgChooseLangs)
	case domain.StateNext:
		return c.Send(h.processTranslation(text, user))
	case domain.StateAwaitTZ:
		reply, err := h.processTimezone(text, user)
		if err != nil {
			return err
		}
		return c.Send(reply)
	case domain.StateAwaitQN:
		reply, err := h.processQuestionCount(text, user)
		if err != nil {
			return err
		}
		return c.Send(reply)
	}

	// QUIZ: answers arrive through polls, free text is ignored
	return nil
}

// processTranslation runs the translation flow and renders its outcome
func (h *Handler) processTranslation(text string, user *domain.User) string {
	res, err := h.translator.Translate(context.Background(), text, user)
	if err != nil {
		var verr *translator.ValidationError
		switch {
		case errors.As(err, &verr):
			return verr.Reason
		case errors.Is(err, translator.ErrQuotaExceeded):
			return fmt.Sprintf("You have spent today's quota of %d translations. It resets at midnight UTC.", user.APIDayQuotaLimit)
		case errors.Is(err, translator.ErrIdentity), errors.Is(err, translator.ErrNoTranslation):
			return "I could not come up with a useful translation for that."
		default:
			h.logger.Error("Translation failed",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			return msgSomethingWrong
		}
	}

	if res.Occurs > 0 {
		return fmt.Sprintf("%s (%s) -> %s\nYou have asked about this one %d times.",
			res.Text, strings.ToUpper(res.TextLang), res.Trans, res.Occurs)
	}
	return fmt.Sprintf("%s (%s) -> %s", res.Text, strings.ToUpper(res.TextLang), res.Trans)
}

// processTimezone stores a valid offset and advances to the
// question-count step; invalid input leaves the state untouched
func (h *Handler) processTimezone(text string, user *domain.User) (string, error) {
	offset, ok := timeutil.ParseOffset(text)
	if !ok {
		return msgWrongOffset, nil
	}

	user.TZOffset = offset
	if err := h.users.Save(user); err != nil {
		return "", err
	}
	if err := h.setState(user, domain.StateAwaitQN); err != nil {
		return "", err
	}

	return fmt.Sprintf("How many questions per quiz? Pick between %d and %d.",
		h.sys.MinQuestions, h.sys.MaxQuestions), nil
}

// processQuestionCount validates the count, dry-runs the selection and
// enables quiz mode when a full batch is possible. Any failure leaves
// the user in the same step to try again.
func (h *Handler) processQuestionCount(text string, user *domain.User) (string, error) {
	num, err := strconv.Atoi(text)
	if err != nil {
		return msgWrongNumber, nil
	}

	if num < h.sys.MinQuestions || num > h.sys.MaxQuestions {
		return fmt.Sprintf("The count must be between %d and %d.",
			h.sys.MinQuestions, h.sys.MaxQuestions), nil
	}

	sess := h.session(user.ID)

	enabled, err := sess.Enable(num)
	if err != nil {
		return "", err
	}
	if !enabled {
		return msgEmptyQuiz, nil
	}

	if err := h.setState(user, domain.StateNext); err != nil {
		return "", err
	}

	h.scheduler.ArmQuizTrigger(user.ID)
	return msgQuizEnabled, nil
}
