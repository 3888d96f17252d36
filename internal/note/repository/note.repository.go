package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"notesapp/pkg/logger"
	"notesapp/store"

	"github.com/lib/pq"
)

// queryTimeout bounds every statement so a wedged connection fails
// noisily instead of hanging the request.
const queryTimeout = 5 * time.Second

var (
	ErrNoteNotFound = errors.New("note not found")
	// ErrCategoryMissing surfaces the foreign key check on
	// notes.category_id; the store enforces it, not the application.
	ErrCategoryMissing = errors.New("category does not exist")
)

const foreignKeyViolation = "23503"

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

const noteColumns = "id, title, content, status, category_id, created_at, updated_at"

// List returns all notes newest-first, each decorated with its
// category's name. A non-nil categoryID restricts to that category.
func (r *NoteRepository) List(ctx context.Context, categoryID *int64) ([]store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT n.id, n.title, n.content, n.status, n.category_id, c.name, n.created_at, n.updated_at
		FROM notes n
		LEFT JOIN categories c ON n.category_id = c.id`

	var rows *sql.Rows
	var err error
	if categoryID != nil {
		query += ` WHERE n.category_id = $1 ORDER BY n.updated_at DESC`
		rows, err = r.DB.QueryContext(ctx, query, *categoryID)
	} else {
		query += ` ORDER BY n.updated_at DESC`
		rows, err = r.DB.QueryContext(ctx, query)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	notes := []store.Note{}
	for rows.Next() {
		var n store.Note
		var catID sql.NullInt64
		var catName sql.NullString
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Status, &catID, &catName, &n.CreatedAt, &n.UpdatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan note row: %v", err)
			return nil, err
		}
		if catID.Valid {
			n.CategoryID = &catID.Int64
		}
		if catName.Valid {
			n.CategoryName = &catName.String
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Create(ctx context.Context, title, content string, status bool, categoryID *int64) (*store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO notes (title, content, status, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns,
		title, content, status, categoryID)
	note, err := scanNote(row)
	if err != nil {
		logger.Sugar.Errorf("Failed to create note: %v", err)
		return nil, translateConstraint(err)
	}
	return note, nil
}

func (r *NoteRepository) Update(ctx context.Context, id int64, title, content string, status bool, categoryID *int64) (*store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE notes
		SET title = $1, content = $2, status = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+noteColumns,
		title, content, status, categoryID, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %d: %v", id, err)
		return nil, translateConstraint(err)
	}
	return note, nil
}

// Delete removes the row and returns the pre-deletion record.
func (r *NoteRepository) Delete(ctx context.Context, id int64) (*store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		DELETE FROM notes WHERE id = $1
		RETURNING `+noteColumns, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %d: %v", id, err)
		return nil, err
	}
	return note, nil
}

// AssignCategory sets category_id on the note. The category itself is
// not checked here; a dangling id comes back as ErrCategoryMissing via
// the store's foreign key.
func (r *NoteRepository) AssignCategory(ctx context.Context, noteID, categoryID int64) (*store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE notes SET category_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+noteColumns,
		categoryID, noteID)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to assign category %d to note %d: %v", categoryID, noteID, err)
		return nil, translateConstraint(err)
	}
	return note, nil
}

func scanNote(row *sql.Row) (*store.Note, error) {
	var n store.Note
	var catID sql.NullInt64
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Status, &catID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if catID.Valid {
		n.CategoryID = &catID.Int64
	}
	return &n, nil
}

func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		return ErrCategoryMissing
	}
	return err
}
