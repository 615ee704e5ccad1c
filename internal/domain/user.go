package domain

import "time"

// State is the user's position in the conversation protocol.
// It gates which inbound events are accepted.
type State int

const (
	StateInit    State = iota // choosing native/translation languages
	StateNext                 // idle, ready for translations and commands
	StateAwaitTZ              // expecting a timezone offset
	StateAwaitQN              // expecting a question count
	StateQuiz                 // a quiz is in progress
)

// User represents a bot user
type User struct {
	ID               int64
	State            State
	NativeLang       string
	TransLang        string
	TZOffset         string // signed hour offset stored as text, "-12".."14"
	APIDayQuota      int
	APIDayQuotaLimit int
	Algo             string // translation provider tag
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a user with storage defaults
func NewUser(id int64) *User {
	return &User{
		ID:               id,
		State:            StateInit,
		NativeLang:       "ru",
		TransLang:        "en",
		TZOffset:         "0",
		APIDayQuota:      100,
		APIDayQuotaLimit: 100,
		Algo:             "gapi",
	}
}
