// Package translator runs the translation flow: input validation,
// vocabulary lookup, the shared Redis cache and the external provider.
package translator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"vocadrill/internal/domain"
	"vocadrill/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrQuotaExceeded means the user spent the daily provider quota
	ErrQuotaExceeded = errors.New("translator: daily quota exceeded")
	// ErrNoTranslation means the provider returned nothing usable
	ErrNoTranslation = errors.New("translator: provider returned no translation")
	// ErrIdentity means the provider echoed the input back
	ErrIdentity = errors.New("translator: translation equals the source text")
)

// ValidationError describes rejected input; Reason is safe to show
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "translator: " + e.Reason
}

var (
	reJunk        = regexp.MustCompile(`^(?:\d|\W)+$`)
	reLeadingPunc = regexp.MustCompile(`^\W`)
)

// Provider translates text between two provider-specific language codes
type Provider interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}

// Result is a successful translation. Occurs is zero for a first-time
// translation and counts repeats otherwise.
type Result struct {
	Text      string
	TextLang  string
	Trans     string
	TransLang string
	Occurs    int
}

// Service implements the translation flow
type Service struct {
	vocab    repository.VocabRepository
	users    repository.UserRepository
	langs    repository.LangRepository
	sys      *domain.SystemConfig
	cache    *redis.Client // nil disables the cache
	provider Provider
	logger   *zap.Logger
}

// NewService creates a translation service; cache may be nil
func NewService(
	vocab repository.VocabRepository,
	users repository.UserRepository,
	langs repository.LangRepository,
	sys *domain.SystemConfig,
	cache *redis.Client,
	provider Provider,
	logger *zap.Logger,
) *Service {
	return &Service{
		vocab:    vocab,
		users:    users,
		langs:    langs,
		sys:      sys,
		cache:    cache,
		provider: provider,
		logger:   logger,
	}
}

// Translate resolves the user's input to a translation: the user's own
// vocabulary first, then the shared cache, then the provider (spending
// one unit of the daily quota and persisting the new item).
func (s *Service) Translate(ctx context.Context, text string, user *domain.User) (*Result, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	if err := s.validate(text); err != nil {
		return nil, err
	}

	// the user types a foreign word; it lands as text in the
	// translation language, translated into the native one
	item, err := s.vocab.Find(user.ID, text, user.TransLang, user.NativeLang)
	if err != nil {
		return nil, fmt.Errorf("translate: lookup: %w", err)
	}
	if item != nil {
		item.Occurs++
		item.Weight++
		if err := s.vocab.Save(item); err != nil {
			return nil, fmt.Errorf("translate: save repeat: %w", err)
		}
		return &Result{
			Text:      item.Text,
			TextLang:  item.TextLang,
			Trans:     item.Trans,
			TransLang: item.TransLang,
			Occurs:    item.Occurs,
		}, nil
	}

	if trans := s.cacheGet(ctx, user, text); trans != "" {
		return &Result{
			Text:      text,
			TextLang:  user.TransLang,
			Trans:     trans,
			TransLang: user.NativeLang,
		}, nil
	}

	return s.translateRemote(ctx, text, user)
}

func (s *Service) translateRemote(ctx context.Context, text string, user *domain.User) (*Result, error) {
	if user.APIDayQuota <= 0 {
		return nil, ErrQuotaExceeded
	}

	user.APIDayQuota--
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("translate: spend quota: %w", err)
	}

	sourceCode, err := s.providerCode(user.TransLang)
	if err != nil {
		return nil, err
	}
	targetCode, err := s.providerCode(user.NativeLang)
	if err != nil {
		return nil, err
	}

	trans, err := s.provider.Translate(ctx, text, sourceCode, targetCode)
	if err != nil {
		return nil, fmt.Errorf("translate: provider: %w", err)
	}

	trans = strings.ToLower(trans)
	if trans == "" {
		return nil, ErrNoTranslation
	}
	if trans == text {
		return nil, ErrIdentity
	}

	s.cacheSet(ctx, user, text, trans)

	item := &domain.VocabularyItem{
		UserID:    user.ID,
		Text:      text,
		TextLang:  user.TransLang,
		Trans:     trans,
		TransLang: user.NativeLang,
	}
	if err := s.vocab.Save(item); err != nil {
		return nil, fmt.Errorf("translate: save item: %w", err)
	}

	return &Result{
		Text:      item.Text,
		TextLang:  item.TextLang,
		Trans:     item.Trans,
		TransLang: item.TransLang,
	}, nil
}

func (s *Service) validate(text string) error {
	if len(text) > s.sys.MaxTextLen {
		return &ValidationError{Reason: fmt.Sprintf("text is longer than %d characters", s.sys.MaxTextLen)}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return &ValidationError{Reason: "nothing to translate"}
	}
	if len(words) > s.sys.MaxWordCount {
		return &ValidationError{Reason: fmt.Sprintf("more than %d words", s.sys.MaxWordCount)}
	}

	for _, word := range words {
		if len(word) > s.sys.MaxWordLen {
			return &ValidationError{Reason: fmt.Sprintf("a word is longer than %d characters", s.sys.MaxWordLen)}
		}
		if reJunk.MatchString(word) || reLeadingPunc.MatchString(word) {
			return &ValidationError{Reason: "only letters are translatable"}
		}
	}

	return nil
}

func (s *Service) providerCode(lang string) (string, error) {
	l, err := s.langs.ByCode(lang)
	if err != nil {
		return "", fmt.Errorf("translate: language %q: %w", lang, err)
	}
	if l == nil {
		return "", fmt.Errorf("translate: unknown language %q", lang)
	}
	return l.GCode, nil
}

// cache layout: one hash per native language, field per (trans, text)
func cacheKey(nativeLang string) string {
	return "trans:" + nativeLang
}

func cacheField(transLang, text string) string {
	return transLang + ":" + text
}

func (s *Service) cacheGet(ctx context.Context, user *domain.User, text string) string {
	if s.cache == nil {
		return ""
	}

	val, err := s.cache.HGet(ctx, cacheKey(user.NativeLang), cacheField(user.TransLang, text)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("Translation cache read failed", zap.Error(err))
		}
		return ""
	}
	return val
}

func (s *Service) cacheSet(ctx context.Context, user *domain.User, text, trans string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.HSet(ctx, cacheKey(user.NativeLang), cacheField(user.TransLang, text), trans).Err(); err != nil {
		s.logger.Debug("Translation cache write failed", zap.Error(err))
	}
}
