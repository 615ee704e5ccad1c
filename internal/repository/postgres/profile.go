package postgres

import (
	"database/sql"

	"vocadrill/internal/domain"
)

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a new quiz profile repository
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// ByUser returns the user's quiz profile, or nil when absent
func (r *ProfileRepo) ByUser(userID int64) (*domain.QuizProfile, error) {
	var p domain.QuizProfile
	var quizedOn sql.NullTime

	query := `
		SELECT id, user_id, algo, revoke, questions, is_enabled, corrects, mistakes, quized_on
		FROM quiz_profiles WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&p.ID, &p.UserID, &p.Algo, &p.Revoke, &p.Questions,
		&p.IsEnabled, &p.Corrects, &p.Mistakes, &quizedOn,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if quizedOn.Valid {
		p.QuizedOn = &quizedOn.Time
	}
	return &p, nil
}

// Save upserts the profile
func (r *ProfileRepo) Save(profile *domain.QuizProfile) error {
	query := `
		INSERT INTO quiz_profiles (user_id, algo, revoke, questions, is_enabled,
			corrects, mistakes, quized_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			algo = EXCLUDED.algo,
			revoke = EXCLUDED.revoke,
			questions = EXCLUDED.questions,
			is_enabled = EXCLUDED.is_enabled,
			corrects = EXCLUDED.corrects,
			mistakes = EXCLUDED.mistakes,
			quized_on = EXCLUDED.quized_on
	`
	_, err := r.db.Exec(query,
		profile.UserID, profile.Algo, profile.Revoke, profile.Questions,
		profile.IsEnabled, profile.Corrects, profile.Mistakes, nullTime(profile.QuizedOn),
	)
	return err
}
