package postgres

import (
	"database/sql"
	"testing"

	"vocadrill/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSystemRepo_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSystemRepo(db)

	rows := sqlmock.NewRows([]string{"id", "max_word_count", "max_word_len", "max_text_len",
		"min_questions", "max_questions", "polling_interval", "quiz_query_limit",
		"user_ban_time_mins", "quiet_start_hour", "quiet_end_hour"}).
		AddRow(0, 5, 32, 192, 10, 20, 180, 1000, 3, 9, 21)

	mock.ExpectQuery("SELECT (.+) FROM systems WHERE id = \\$1").
		WithArgs(domain.SystemConfigID).
		WillReturnRows(rows)

	sys, err := repo.Get()

	assert.NoError(t, err)
	assert.Equal(t, 180, sys.PollingIntervalMins)
	assert.Equal(t, 1000, sys.QuizQueryLimit)
	assert.Equal(t, 9, sys.QuietStartHour)
	assert.Equal(t, 21, sys.QuietEndHour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLangRepo_All(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewLangRepo(db)

	rows := sqlmock.NewRows([]string{"id", "lang", "full_name", "gcode"}).
		AddRow(1, "en", "English", "en").
		AddRow(2, "ru", "Russian", "ru")

	mock.ExpectQuery("SELECT (.+) FROM langs ORDER BY id").WillReturnRows(rows)

	langs, err := repo.All()

	assert.NoError(t, err)
	assert.Len(t, langs, 2)
	assert.Equal(t, "English", langs[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLangRepo_ByCode(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		mockRows    *sqlmock.Rows
		mockError   error
		expectedNil bool
	}{
		{
			name: "known language",
			code: "en",
			mockRows: sqlmock.NewRows([]string{"id", "lang", "full_name", "gcode"}).
				AddRow(1, "en", "English", "en"),
		},
		{
			name:        "unknown language",
			code:        "xx",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewLangRepo(db)

			query := "SELECT (.+) FROM langs WHERE lang = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.code).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.code).WillReturnRows(tt.mockRows)
			}

			lang, err := repo.ByCode(tt.code)

			assert.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, lang)
			} else {
				assert.Equal(t, "en", lang.Lang)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
