package postgres

import (
	"database/sql"
	"testing"
	"time"

	"vocadrill/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProfileRepo_ByUser(t *testing.T) {
	tests := []struct {
		name        string
		mockRows    *sqlmock.Rows
		mockError   error
		expectedNil bool
	}{
		{
			name: "existing profile",
			mockRows: sqlmock.NewRows([]string{"id", "user_id", "algo", "revoke", "questions",
				"is_enabled", "corrects", "mistakes", "quized_on"}).
				AddRow(1, 123, "v2", 3, 15, true, 10, 4, time.Now()),
		},
		{
			name:        "no profile yet",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewProfileRepo(db)

			query := "SELECT (.+) FROM quiz_profiles WHERE user_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(123)).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(123)).WillReturnRows(tt.mockRows)
			}

			profile, err := repo.ByUser(123)

			assert.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, profile)
			} else {
				assert.Equal(t, int64(123), profile.UserID)
				assert.Equal(t, "v2", profile.Algo)
				assert.True(t, profile.IsEnabled)
				assert.NotNil(t, profile.QuizedOn)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepo(db)
	profile := domain.NewQuizProfile(123)

	mock.ExpectExec("INSERT INTO quiz_profiles").
		WithArgs(profile.UserID, profile.Algo, profile.Revoke, profile.Questions,
			profile.IsEnabled, profile.Corrects, profile.Mistakes, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(profile)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
