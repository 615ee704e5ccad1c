package domain

// SystemConfigID is the fixed id of the singleton systems row
const SystemConfigID = 0

// SystemConfig holds runtime limits, loaded once at startup
type SystemConfig struct {
	ID                  int64
	MaxWordCount        int
	MaxWordLen          int
	MaxTextLen          int
	MinQuestions        int
	MaxQuestions        int
	PollingIntervalMins int
	QuizQueryLimit      int
	UserBanTimeMins     int
	QuietStartHour      int
	QuietEndHour        int
}

// Lang is a supported language with its translation-provider code
type Lang struct {
	ID       int64
	Lang     string
	FullName string
	GCode    string
}
