package handler

import (
	"fmt"
	"strings"

	"vocadrill/internal/domain"
	"vocadrill/internal/timeutil"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart begins the language setup flow. "/start <lang>" skips
// straight to the translation-language keyboard.
func (h *Handler) handleStart(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	if user.State != domain.StateInit {
		return c.Send(msgWrongStart)
	}

	if payload := strings.TrimSpace(c.Message().Payload); payload != "" {
		lang, err := h.langs.ByCode(payload)
		if err != nil {
			return err
		}
		if lang != nil {
			user.NativeLang = lang.Lang
			if err := h.users.Save(user); err != nil {
				return err
			}

			markup, err := h.transLangKeyboard(user)
			if err != nil {
				return err
			}
			return c.Send(msgChooseTrans, markup)
		}
	}

	markup, err := h.nativeLangKeyboard()
	if err != nil {
		return err
	}
	return c.Send(msgChooseNative, markup)
}

// handleConfig restarts the language setup
func (h *Handler) handleConfig(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	if user.State != domain.StateInit && user.State != domain.StateNext {
		return c.Send(msgWrongConfig)
	}

	if err := h.setState(user, domain.StateInit); err != nil {
		return err
	}

	markup, err := h.nativeLangKeyboard()
	if err != nil {
		return err
	}
	return c.Send(msgChooseNative, markup)
}

// handleQuizMode toggles quiz mode: first use walks through the
// timezone and question-count setup, an enabled profile just turns off
func (h *Handler) handleQuizMode(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	reply, err := h.toggleQuizMode(user)
	if err != nil {
		return err
	}
	return c.Send(reply)
}

// toggleQuizMode decides the quiz-mode command outcome. Only an idle
// user may toggle; anything else is rejected with the state untouched.
func (h *Handler) toggleQuizMode(user *domain.User) (string, error) {
	if user.State != domain.StateNext {
		return msgWrongQuiz, nil
	}

	sess := h.session(user.ID)

	if !sess.IsEnabled() {
		if err := h.setState(user, domain.StateAwaitTZ); err != nil {
			return "", err
		}
		return msgAskOffset, nil
	}

	if err := sess.Disable(); err != nil {
		return "", err
	}
	h.scheduler.DisarmQuizTrigger(user.ID)
	return msgQuizDisabled, nil
}

// handleGo starts a quiz immediately
func (h *Handler) handleGo(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	sess := h.session(user.ID)
	if user.State != domain.StateNext || !sess.IsEnabled() {
		return c.Send(msgWrongGo)
	}

	started, err := h.startQuiz(user)
	if err != nil {
		return err
	}
	if !started {
		return c.Send(msgEmptyQuiz)
	}
	return nil
}

// handleSwitch toggles the selection algorithm
func (h *Handler) handleSwitch(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	sess := h.session(user.ID)
	if user.State != domain.StateNext || !sess.IsEnabled() {
		return c.Send(msgWrongGo)
	}

	if err := sess.SwitchAlgo(); err != nil {
		return err
	}
	return c.Send(msgAlgoSwitched)
}

// handleTop10 reports the ten heaviest vocabulary items
func (h *Handler) handleTop10(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	sess := h.session(user.ID)
	if user.State != domain.StateNext || !sess.IsEnabled() {
		return c.Send(msgWrongGo)
	}

	items, err := sess.Top()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return c.Send(msgEmptyTop)
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		lastAppear := "..."
		if item.LastAppear != nil {
			lastAppear = item.LastAppear.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s (%s) -> %s (%s)\nweight %d, hold %d, last quizzed %s",
			item.Text, strings.ToUpper(item.TextLang),
			item.Trans, strings.ToUpper(item.TransLang),
			item.Weight, item.Hold, lastAppear,
		)
	}
	return c.Send(b.String())
}

// startQuiz prepares a batch and serves the first question. Returns
// false when the vocabulary cannot fill a full batch.
func (h *Handler) startQuiz(user *domain.User) (bool, error) {
	sess := h.session(user.ID)

	if err := sess.Prepare(); err != nil {
		return false, err
	}

	question := sess.Next()
	if question == nil {
		return false, nil
	}

	h.scheduler.DisarmQuizTrigger(user.ID)

	if err := h.setState(user, domain.StateQuiz); err != nil {
		return false, err
	}
	if err := sess.MarkQuized(timeutil.UserDate(user.TZOffset)); err != nil {
		return false, err
	}

	h.logger.Info("Quiz started",
		zap.Int64("user_id", user.ID),
		zap.Int("questions", sess.Profile().Questions),
	)

	return true, h.sendQuestion(user, question, 1)
}

func (h *Handler) nativeLangKeyboard() (*tele.ReplyMarkup, error) {
	langs, err := h.langs.All()
	if err != nil {
		return nil, err
	}
	return langsKeyboard(langs, "native_lang_"), nil
}

func (h *Handler) transLangKeyboard(user *domain.User) (*tele.ReplyMarkup, error) {
	langs, err := h.langs.All()
	if err != nil {
		return nil, err
	}

	filtered := langs[:0:0]
	for _, lang := range langs {
		if lang.Lang != user.NativeLang {
			filtered = append(filtered, lang)
		}
	}
	return langsKeyboard(filtered, "trans_lang_"), nil
}
