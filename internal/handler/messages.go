package handler

import (
	"vocadrill/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// User-facing copy. Kept as plain constants; localization lives outside
// this service.
const (
	msgChooseNative   = "Pick your native language:"
	msgChooseTrans    = "Now pick the language you are learning:"
	msgLangsDone      = "All set. Send me a word or a phrase and I will translate it."
	msgChooseLangs    = "Finish picking your languages first."
	msgWrongStart     = "You are already set up. Use /config to change languages."
	msgWrongConfig    = "Finish what you started before reconfiguring."
	msgWrongQuiz      = "Quiz mode can only be toggled when you are not busy with anything else."
	msgWrongGo        = "Enable quiz mode with /quiz first."
	msgAskOffset      = "Quiz mode needs your timezone. Send me your UTC offset, like +3 or -5."
	msgWrongOffset    = "That does not look like a UTC offset. Try something like +3, 0 or -5."
	msgWrongNumber    = "Send me a plain number."
	msgQuizEnabled    = "Quiz mode is on. I will ping you when it is time, or run /go whenever you like."
	msgQuizDisabled   = "Quiz mode is off."
	msgEmptyQuiz      = "Not enough vocabulary for a full quiz yet. Translate more words and try again."
	msgEmptyTop       = "No weighted words yet. Make some mistakes first."
	msgNextTime       = "Alright, next time."
	msgAreYouReady    = "Time to drill your vocabulary. Ready?"
	msgAlgoSwitched   = "Selection algorithm switched."
	msgUnknownCommand = "I do not know that command."
	msgRateLimited    = "Too many messages. Take a breath, I will be here."
	msgSomethingWrong = "Something went wrong. Try again later."
)

const langKeyboardColumns = 4

// langsKeyboard lays language buttons out in rows of four, callback
// data prefixed with native_lang_ or trans_lang_
func langsKeyboard(langs []domain.Lang, prefix string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	var row []tele.Btn

	for _, lang := range langs {
		row = append(row, markup.Data(lang.FullName, prefix+lang.Lang))
		if len(row) == langKeyboardColumns {
			rows = append(rows, markup.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, markup.Row(row...))
	}

	markup.Inline(rows...)
	return markup
}

func yesNoKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Yes", "quiz_yes"),
		markup.Data("No", "quiz_no"),
	))
	return markup
}
