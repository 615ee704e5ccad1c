package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"vocadrill/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func vocabTestColumns() []string {
	return []string{"id", "user_id", "text", "text_lang", "trans", "trans_lang",
		"occurs", "weight", "appears", "hold", "last_appear", "created_at"}
}

func vocabRow(rows *sqlmock.Rows, id int64, text string, weight int, lastAppear interface{}) *sqlmock.Rows {
	return rows.AddRow(id, int64(123), text, "en", "перевод", "ru",
		1, weight, 0, 0, lastAppear, time.Now())
}

func TestVocabRepo_ByWeight(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	rows := sqlmock.NewRows(vocabTestColumns())
	vocabRow(rows, 1, "cat", 5, time.Now())
	vocabRow(rows, 2, "dog", 3, nil)

	mock.ExpectQuery("SELECT (.+) FROM vocabulary WHERE user_id = \\$1 ORDER BY weight DESC").
		WithArgs(int64(123), 1000).
		WillReturnRows(rows)

	items, err := repo.ByWeight(123, 1000)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "cat", items[0].Text)
	assert.NotNil(t, items[0].LastAppear)
	assert.Nil(t, items[1].LastAppear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRepo_Find(t *testing.T) {
	tests := []struct {
		name        string
		mockRows    *sqlmock.Rows
		mockError   error
		expectedNil bool
	}{
		{
			name:     "existing item",
			mockRows: vocabRow(sqlmock.NewRows(vocabTestColumns()), 1, "cat", 5, nil),
		},
		{
			name:        "unknown item",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewVocabRepo(db)

			query := "SELECT (.+) FROM vocabulary WHERE user_id = \\$1 AND text = \\$2"
			if tt.mockError != nil {
				mock.ExpectQuery(query).
					WithArgs(int64(123), "cat", "en", "ru").
					WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).
					WithArgs(int64(123), "cat", "en", "ru").
					WillReturnRows(tt.mockRows)
			}

			item, err := repo.Find(123, "cat", "en", "ru")

			assert.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, item)
			} else {
				assert.Equal(t, "cat", item.Text)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabRepo_SaveNewItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	item := &domain.VocabularyItem{
		UserID: 123, Text: "cat", TextLang: "en",
		Trans: "кошка", TransLang: "ru", Occurs: 1,
	}

	mock.ExpectQuery("INSERT INTO vocabulary").
		WithArgs(item.UserID, item.Text, item.TextLang, item.Trans, item.TransLang,
			item.Occurs, item.Weight, item.Appears, item.Hold, sql.NullTime{}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	err = repo.Save(item)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRepo_SaveExistingItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	item := &domain.VocabularyItem{ID: 42, Occurs: 2, Weight: 1, Appears: 3, Hold: 2}

	mock.ExpectExec("UPDATE vocabulary").
		WithArgs(item.ID, item.Occurs, item.Weight, item.Appears, item.Hold, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(item)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRepo_ApplyAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	target := &domain.VocabularyItem{ID: 1, Occurs: 1, Weight: 2, Appears: 5, Hold: 3, LastAppear: &date}
	chosen := &domain.VocabularyItem{ID: 2, Occurs: 1, Weight: 1, Appears: 4, Hold: 3, LastAppear: &date}
	profile := &domain.QuizProfile{UserID: 123, Corrects: 10, Mistakes: 4, QuizedOn: &date}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vocabulary").
		WithArgs(target.ID, target.Occurs, target.Weight, target.Appears, target.Hold,
			sql.NullTime{Time: date, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vocabulary").
		WithArgs(chosen.ID, chosen.Occurs, chosen.Weight, chosen.Appears, chosen.Hold,
			sql.NullTime{Time: date, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quiz_profiles").
		WithArgs(profile.UserID, profile.Corrects, profile.Mistakes,
			sql.NullTime{Time: date, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.ApplyAnswer(target, chosen, profile)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRepo_ApplyAnswerWithoutChosen(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	target := &domain.VocabularyItem{ID: 1, Appears: 1}
	profile := &domain.QuizProfile{UserID: 123, Corrects: 1}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vocabulary").
		WithArgs(target.ID, target.Occurs, target.Weight, target.Appears, target.Hold, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quiz_profiles").
		WithArgs(profile.UserID, profile.Corrects, profile.Mistakes, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.ApplyAnswer(target, nil, profile)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRepo_ApplyAnswerRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVocabRepo(db)

	target := &domain.VocabularyItem{ID: 1}
	profile := &domain.QuizProfile{UserID: 123}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vocabulary").
		WithArgs(target.ID, target.Occurs, target.Weight, target.Appears, target.Hold, sql.NullTime{}).
		WillReturnError(fmt.Errorf("deadlock detected"))
	mock.ExpectRollback()

	err = repo.ApplyAnswer(target, nil, profile)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "target #1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
