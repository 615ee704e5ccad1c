package postgres

import (
	"database/sql"

	"vocadrill/internal/domain"
)

// SystemRepo implements repository.SystemRepository
type SystemRepo struct {
	db *sql.DB
}

// NewSystemRepo creates a new system config repository
func NewSystemRepo(db *sql.DB) *SystemRepo {
	return &SystemRepo{db: db}
}

// Get loads the singleton runtime limits row
func (r *SystemRepo) Get() (*domain.SystemConfig, error) {
	var s domain.SystemConfig
	query := `
		SELECT id, max_word_count, max_word_len, max_text_len,
			min_questions, max_questions, polling_interval, quiz_query_limit,
			user_ban_time_mins, quiet_start_hour, quiet_end_hour
		FROM systems WHERE id = $1
	`
	err := r.db.QueryRow(query, domain.SystemConfigID).Scan(
		&s.ID, &s.MaxWordCount, &s.MaxWordLen, &s.MaxTextLen,
		&s.MinQuestions, &s.MaxQuestions, &s.PollingIntervalMins, &s.QuizQueryLimit,
		&s.UserBanTimeMins, &s.QuietStartHour, &s.QuietEndHour,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// LangRepo implements repository.LangRepository
type LangRepo struct {
	db *sql.DB
}

// NewLangRepo creates a new language repository
func NewLangRepo(db *sql.DB) *LangRepo {
	return &LangRepo{db: db}
}

// All returns every supported language
func (r *LangRepo) All() ([]domain.Lang, error) {
	rows, err := r.db.Query(`SELECT id, lang, full_name, gcode FROM langs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []domain.Lang
	for rows.Next() {
		var l domain.Lang
		if err := rows.Scan(&l.ID, &l.Lang, &l.FullName, &l.GCode); err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}

	return langs, rows.Err()
}

// ByCode returns the language with the given code, or nil
func (r *LangRepo) ByCode(code string) (*domain.Lang, error) {
	var l domain.Lang
	err := r.db.QueryRow(`SELECT id, lang, full_name, gcode FROM langs WHERE lang = $1`, code).
		Scan(&l.ID, &l.Lang, &l.FullName, &l.GCode)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}
