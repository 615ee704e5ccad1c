package handler

import (
	"strings"
	"unicode"

	"vocadrill/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData strips the control bytes telebot wraps button
// payloads in, leaving the printable data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, data)
}

// handleCallback dispatches inline keyboard presses by payload prefix
func (h *Handler) handleCallback(c tele.Context) error {
	user := h.cachedUser(c)
	if user == nil {
		return nil
	}

	defer func() { _ = c.Respond() }()

	data := cleanCallbackData(c.Callback().Data)

	switch {
	case strings.HasPrefix(data, "native_lang_"):
		return h.confirmNativeLang(c, user, strings.TrimPrefix(data, "native_lang_"))
	case strings.HasPrefix(data, "trans_lang_"):
		return h.confirmTransLang(c, user, strings.TrimPrefix(data, "trans_lang_"))
	case data == "quiz_yes" || data == "quiz_no":
		return h.confirmQuizStart(c, user, data == "quiz_yes")
	}
	return nil
}

// confirmNativeLang records the chosen native language and moves the
// keyboard on to the translation language. A press on a stale keyboard
// outside setup just removes it.
func (h *Handler) confirmNativeLang(c tele.Context, user *domain.User, code string) error {
	if user.State != domain.StateInit {
		return c.Delete()
	}

	user.NativeLang = code
	if err := h.users.Save(user); err != nil {
		return err
	}

	markup, err := h.transLangKeyboard(user)
	if err != nil {
		return err
	}
	return c.Edit(msgChooseTrans, markup)
}

// confirmTransLang finishes the language setup
func (h *Handler) confirmTransLang(c tele.Context, user *domain.User, code string) error {
	if user.State != domain.StateInit {
		return c.Delete()
	}

	user.TransLang = code
	if err := h.users.Save(user); err != nil {
		return err
	}
	if err := h.setState(user, domain.StateNext); err != nil {
		return err
	}
	return c.Edit(msgLangsDone)
}

// confirmQuizStart reacts to the scheduled quiz prompt
func (h *Handler) confirmQuizStart(c tele.Context, user *domain.User, ready bool) error {
	sess := h.session(user.ID)
	if user.State != domain.StateNext || !sess.IsEnabled() {
		return c.Delete()
	}

	delete(h.prompts, user.ID)

	if !ready {
		return c.Edit(msgNextTime)
	}

	if err := c.Delete(); err != nil {
		return err
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
