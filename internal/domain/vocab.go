package domain

import "time"

// VocabularyItem is a translated word or phrase belonging to one user.
//
// Occurs counts repeated translations, Weight is the quiz priority,
// Appears counts quiz showings and Hold is the number of consecutive
// correct answers still required before Weight may decay to zero.
type VocabularyItem struct {
	ID         int64
	UserID     int64
	Text       string
	TextLang   string
	Trans      string
	TransLang  string
	Occurs     int
	Weight     int
	Appears    int
	Hold       int
	LastAppear *time.Time
	CreatedAt  time.Time
}
