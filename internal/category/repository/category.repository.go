package repository

import (
	"context"
	"database/sql"
	"time"

	"notesapp/pkg/logger"
	"notesapp/store"
)

const queryTimeout = 5 * time.Second

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]store.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id ASC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	categories := []store.Category{}
	for rows.Next() {
		var c store.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			logger.Sugar.Errorf("Failed to scan category row: %v", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a category. Names are not deduplicated; two categories
// may share a name.
func (r *CategoryRepository) Create(ctx context.Context, name string) (*store.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c store.Category
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`,
		name).Scan(&c.ID, &c.Name)
	if err != nil {
		logger.Sugar.Errorf("Failed to create category: %v", err)
		return nil, err
	}
	return &c, nil
}

// ListNotes returns the notes assigned to a category, newest-first. A
// category with no notes yields an empty slice.
func (r *CategoryRepository) ListNotes(ctx context.Context, categoryID int64) ([]store.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT n.id, n.title, n.content, n.status, n.category_id, c.name, n.created_at, n.updated_at
		FROM notes n
		JOIN categories c ON n.category_id = c.id
		WHERE n.category_id = $1
		ORDER BY n.updated_at DESC`,
		categoryID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes for category %d: %v", categoryID, err)
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
