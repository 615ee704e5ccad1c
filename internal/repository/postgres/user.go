package postgres

import (
	"database/sql"

	"vocadrill/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Get returns the user, or nil when absent
func (r *UserRepo) Get(userID int64) (*domain.User, error) {
	var u domain.User
	query := `
		SELECT id, state, native_lang, trans_lang, tz_offset,
			api_day_quota, api_day_quota_limit, algo, created_at, updated_at
		FROM users WHERE id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&u.ID, &u.State, &u.NativeLang, &u.TransLang, &u.TZOffset,
		&u.APIDayQuota, &u.APIDayQuotaLimit, &u.Algo, &u.CreatedAt, &u.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Save upserts the user
func (r *UserRepo) Save(user *domain.User) error {
	query := `
		INSERT INTO users (id, state, native_lang, trans_lang, tz_offset,
			api_day_quota, api_day_quota_limit, algo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			state = EXCLUDED.state,
			native_lang = EXCLUDED.native_lang,
			trans_lang = EXCLUDED.trans_lang,
			tz_offset = EXCLUDED.tz_offset,
			api_day_quota = EXCLUDED.api_day_quota,
			api_day_quota_limit = EXCLUDED.api_day_quota_limit,
			algo = EXCLUDED.algo,
			updated_at = NOW()
	`
	_, err := r.db.Exec(query,
		user.ID, user.State, user.NativeLang, user.TransLang, user.TZOffset,
		user.APIDayQuota, user.APIDayQuotaLimit, user.Algo,
	)
	return err
}

// SetState updates only the conversation state
func (r *UserRepo) SetState(userID int64, state domain.State) error {
	query := `UPDATE users SET state = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(query, userID, state)
	return err
}

// All returns every known user
func (r *UserRepo) All() ([]domain.User, error) {
	query := `
		SELECT id, state, native_lang, trans_lang, tz_offset,
			api_day_quota, api_day_quota_limit, algo, created_at, updated_at
		FROM users
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.State, &u.NativeLang, &u.TransLang, &u.TZOffset,
			&u.APIDayQuota, &u.APIDayQuotaLimit, &u.Algo, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ResetQuota restores the user's daily translation quota to its limit
func (r *UserRepo) ResetQuota(userID int64) error {
	query := `UPDATE users SET api_day_quota = api_day_quota_limit WHERE id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}
