package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"notesapp/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newMockRepo(t *testing.T) (*CategoryRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoryRepository(db), mock
}

func TestListOrdersByIDAsc(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name FROM categories ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "work").
			AddRow(2, "personal"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, "personal", categories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllowsDuplicateNames(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO categories \(name\) VALUES \(\$1\) RETURNING id, name`).
		WithArgs("work").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "work"))

	category, err := repo.Create(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, int64(3), category.ID)
	assert.Equal(t, "work", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotesByCategory(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM notes n JOIN categories c ON n.category_id = c.id WHERE n.category_id = \$1 ORDER BY n.updated_at DESC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "category_id", "name", "created_at", "updated_at"}).
			AddRow(1, "A", "B", true, 7, "work", now, now))

	notes, err := repo.ListNotes(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].CategoryName)
	assert.Equal(t, "work", *notes[0].CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNotesByCategoryEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE n.category_id = \$1 ORDER BY n.updated_at DESC`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "category_id", "name", "created_at", "updated_at"}))

	notes, err := repo.ListNotes(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
