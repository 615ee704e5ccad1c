package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"vocadrill/internal/domain"
)

// VocabRepo implements repository.VocabRepository
type VocabRepo struct {
	db *sql.DB
}

// NewVocabRepo creates a new vocabulary repository
func NewVocabRepo(db *sql.DB) *VocabRepo {
	return &VocabRepo{db: db}
}

const vocabColumns = `id, user_id, text, text_lang, trans, trans_lang,
			occurs, weight, appears, hold, last_appear, created_at`

// ByWeight returns up to limit items ordered by weight descending
func (r *VocabRepo) ByWeight(userID int64, limit int) ([]domain.VocabularyItem, error) {
	query := `
		SELECT ` + vocabColumns + `
		FROM vocabulary
		WHERE user_id = $1
		ORDER BY weight DESC
		LIMIT $2
	`
	return r.queryItems(query, userID, limit)
}

// Top returns the heaviest items still carrying weight
func (r *VocabRepo) Top(userID int64, limit int) ([]domain.VocabularyItem, error) {
	query := `
		SELECT ` + vocabColumns + `
		FROM vocabulary
		WHERE user_id = $1 AND weight > 0
		ORDER BY weight DESC
		LIMIT $2
	`
	return r.queryItems(query, userID, limit)
}

// Find returns the item with the given text and language pair, or nil
func (r *VocabRepo) Find(userID int64, text, textLang, transLang string) (*domain.VocabularyItem, error) {
	query := `
		SELECT ` + vocabColumns + `
		FROM vocabulary
		WHERE user_id = $1 AND text = $2 AND text_lang = $3 AND trans_lang = $4
	`
	row := r.db.QueryRow(query, userID, text, textLang, transLang)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Save inserts a new item or updates an existing one
func (r *VocabRepo) Save(item *domain.VocabularyItem) error {
	if item.ID == 0 {
		query := `
			INSERT INTO vocabulary (user_id, text, text_lang, trans, trans_lang,
				occurs, weight, appears, hold, last_appear)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		return r.db.QueryRow(query,
			item.UserID, item.Text, item.TextLang, item.Trans, item.TransLang,
			item.Occurs, item.Weight, item.Appears, item.Hold, nullTime(item.LastAppear),
		).Scan(&item.ID)
	}

	query := `
		UPDATE vocabulary
		SET occurs = $2, weight = $3, appears = $4, hold = $5, last_appear = $6
		WHERE id = $1
	`
	_, err := r.db.Exec(query,
		item.ID, item.Occurs, item.Weight, item.Appears, item.Hold, nullTime(item.LastAppear),
	)
	return err
}

// ApplyAnswer commits one answer outcome atomically: the target item,
// the mistakenly chosen option when present, and the profile counters.
func (r *VocabRepo) ApplyAnswer(target, chosen *domain.VocabularyItem, profile *domain.QuizProfile) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("apply answer: begin: %w", err)
	}

	itemQuery := `
		UPDATE vocabulary
		SET occurs = $2, weight = $3, appears = $4, hold = $5, last_appear = $6
		WHERE id = $1
	`

	if _, err := tx.Exec(itemQuery,
		target.ID, target.Occurs, target.Weight, target.Appears, target.Hold, nullTime(target.LastAppear),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply answer: target #%d: %w", target.ID, err)
	}

	if chosen != nil {
		if _, err := tx.Exec(itemQuery,
			chosen.ID, chosen.Occurs, chosen.Weight, chosen.Appears, chosen.Hold, nullTime(chosen.LastAppear),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply answer: chosen #%d: %w", chosen.ID, err)
		}
	}

	profileQuery := `
		UPDATE quiz_profiles
		SET corrects = $2, mistakes = $3, quized_on = $4
		WHERE user_id = $1
	`
	if _, err := tx.Exec(profileQuery,
		profile.UserID, profile.Corrects, profile.Mistakes, nullTime(profile.QuizedOn),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply answer: profile for user #%d: %w", profile.UserID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply answer: commit: %w", err)
	}
	return nil
}

func (r *VocabRepo) queryItems(query string, args ...interface{}) ([]domain.VocabularyItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.VocabularyItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	var lastAppear sql.NullTime

	err := row.Scan(
		&item.ID, &item.UserID, &item.Text, &item.TextLang, &item.Trans, &item.TransLang,
		&item.Occurs, &item.Weight, &item.Appears, &item.Hold, &lastAppear, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastAppear.Valid {
		item.LastAppear = &lastAppear.Time
	}
	return &item, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
