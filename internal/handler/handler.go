// Package handler maps inbound chat events onto the conversation state
// machine and the per-user quiz sessions.
package handler

import (
	"math/rand"
	"sync"
	"time"

	"vocadrill/internal/domain"
	"vocadrill/internal/quiz"
	"vocadrill/internal/repository"
	"vocadrill/internal/translator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TriggerScheduler re-arms and cancels the per-user periodic quiz trigger
type TriggerScheduler interface {
	ArmQuizTrigger(userID int64)
	DisarmQuizTrigger(userID int64)
}

// Handler manages all bot interactions.
//
// All event processing is serialized through mu: telebot dispatches
// updates on separate goroutines and scheduler fires arrive on their
// own goroutine, but at most one of them mutates user state at a time.
type Handler struct {
	bot        *tele.Bot
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	vocab      repository.VocabRepository
	langs      repository.LangRepository
	translator *translator.Service
	scheduler  TriggerScheduler
	sys        *domain.SystemConfig
	rnd        *rand.Rand
	logger     *zap.Logger

	mu sync.Mutex

	// per-user registries: created on first event, never evicted
	userCache map[int64]*domain.User
	sessions  map[int64]*quiz.Session
	prompts   map[int64]int // last quiz prompt message per user

	limiter *rateLimiter
	polls   *pollTable
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	vocab repository.VocabRepository,
	langs repository.LangRepository,
	trans *translator.Service,
	scheduler TriggerScheduler,
	sys *domain.SystemConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		users:      users,
		profiles:   profiles,
		vocab:      vocab,
		langs:      langs,
		translator: trans,
		scheduler:  scheduler,
		sys:        sys,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     logger,
		userCache:  make(map[int64]*domain.User),
		sessions:   make(map[int64]*quiz.Session),
		prompts:    make(map[int64]int),
		limiter:    newRateLimiter(time.Duration(sys.UserBanTimeMins) * time.Minute),
		polls:      newPollTable(),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(h.guard)

	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/config", h.handleConfig)
	h.bot.Handle("/quiz", h.handleQuizMode)
	h.bot.Handle("/go", h.handleGo)
	h.bot.Handle("/switch", h.handleSwitch)
	h.bot.Handle("/top10", h.handleTop10)

	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
	h.bot.Handle(tele.OnPoll, h.handlePoll)
}

// guard serializes event processing, rate-limits message senders,
// lazily creates user state and repairs users stuck mid-quiz after an
// unrecoverable handler failure.
func (h *Handler) guard(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		// poll state updates carry no sender
		if c.Poll() != nil {
			return next(c)
		}

		sender := c.Sender()
		if sender == nil {
			return nil
		}

		if c.Message() != nil && c.Callback() == nil {
			if banned, notice := h.limiter.observe(sender.ID, time.Now()); banned {
				if notice {
					h.logger.Info("User banned for flooding",
						zap.Int64("user_id", sender.ID),
						zap.String("username", sender.Username),
					)
					_ = c.Send(msgRateLimited)
				}
				return nil
			}
		}

		user, err := h.ensureUser(sender.ID)
		if err != nil {
			h.logger.Error("Failed to prepare user state",
				zap.Int64("user_id", sender.ID),
				zap.Error(err),
			)
			return nil
		}

		if err := next(c); err != nil {
			// anything beyond NEXT can leave the user stuck
			if user.State > domain.StateNext {
				h.forceNext(user)
			}
			h.logger.Error("Handler failed",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
		return nil
	}
}

// ensureUser loads or creates the user, quiz profile and session on the
// event path. A user persisted mid-quiz is repaired back to NEXT: a
// crashed quiz cannot be resumed.
func (h *Handler) ensureUser(userID int64) (*domain.User, error) {
	if user, ok := h.userCache[userID]; ok {
		return user, nil
	}

	user, err := h.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = domain.NewUser(userID)
		h.logger.Info("Creating user", zap.Int64("user_id", userID))
	} else {
		h.logger.Info("Fetching user from DB", zap.Int64("user_id", userID))
	}

	if user.State == domain.StateQuiz {
		user.State = domain.StateNext
	}

	if err := h.users.Save(user); err != nil {
		return nil, err
	}

	profile, err := h.profiles.ByUser(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = domain.NewQuizProfile(userID)
		if err := h.profiles.Save(profile); err != nil {
			return nil, err
		}
	}

	sess := quiz.NewSession(user, profile, h.vocab, h.profiles, h.sys.QuizQueryLimit, h.rnd, h.logger)

	h.userCache[userID] = user
	h.sessions[userID] = sess

	if sess.IsEnabled() {
		h.scheduler.ArmQuizTrigger(userID)
	}

	return user, nil
}

// cachedUser returns the user prepared by guard, or nil for events that
// bypassed it
func (h *Handler) cachedUser(c tele.Context) *domain.User {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	return h.userCache[sender.ID]
}

func (h *Handler) session(userID int64) *quiz.Session {
	return h.sessions[userID]
}

func (h *Handler) setState(user *domain.User, state domain.State) error {
	user.State = state
	return h.users.SetState(user.ID, state)
}

// forceNext is the degraded recovery path: when an event fails
// mid-protocol the user must never stay stuck
func (h *Handler) forceNext(user *domain.User) {
	if err := h.setState(user, domain.StateNext); err != nil {
		h.logger.Error("Failed to force user back to NEXT",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return
	}
	h.logger.Info("Forced user state to NEXT", zap.Int64("user_id", user.ID))
}
