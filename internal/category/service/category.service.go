package service

import (
	"context"

	"notesapp/internal/category/repository"
	"notesapp/store"
)

// CategoryService decouples controllers from the repository's method
// signatures; it adds no rules of its own.
type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]store.Category, error) {
	return s.Repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*store.Category, error) {
	return s.Repo.Create(ctx, name)
}

func (s *CategoryService) ListNotes(ctx context.Context, categoryID int64) ([]store.Note, error) {
	return s.Repo.ListNotes(ctx, categoryID)
}
