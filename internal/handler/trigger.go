package handler

import (
	"strconv"

	"vocadrill/internal/domain"
	"vocadrill/internal/timeutil"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleQuizTrigger fires on the user's quiz interval. It prompts the
// user to start a quiz unless they are busy, outside their active
// hours or already drilled today. A prompt left unanswered since the
// previous fire is removed so only one invitation is ever pending.
func (h *Handler) HandleQuizTrigger(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	user, ok := h.userCache[userID]
	if !ok {
		return
	}
	sess := h.session(userID)

	if user.State != domain.StateNext || !sess.IsEnabled() {
		return
	}

	hour := timeutil.UserTime(user.TZOffset).Hour()
	if hour <= h.sys.QuietStartHour || hour >= h.sys.QuietEndHour {
		return
	}

	if quized := sess.Profile().QuizedOn; quized != nil &&
		quized.Equal(timeutil.UserDate(user.TZOffset)) {
		return
	}

	if msgID, ok := h.prompts[userID]; ok {
		_ = h.bot.Delete(tele.StoredMessage{
			MessageID: strconv.Itoa(msgID),
			ChatID:    userID,
		})
		delete(h.prompts, userID)
	}

	msg, err := h.bot.Send(tele.ChatID(userID), msgAreYouReady, yesNoKeyboard())
	if err != nil {
		h.logger.Error("Failed to send quiz prompt",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}
	h.prompts[userID] = msg.ID
}
