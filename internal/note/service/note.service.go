package service

import (
	"context"

	"notesapp/internal/note/repository"
	"notesapp/socket"
	"notesapp/store"
)

// Re-exported so handlers only depend on the service layer.
var (
	ErrNoteNotFound    = repository.ErrNoteNotFound
	ErrCategoryMissing = repository.ErrCategoryMissing
)

// NoteService forwards controller input to the repository and publishes
// change events to the realtime feed. It holds no business rules of its
// own; every operation is a single store round trip.
type NoteService struct {
	Repo *repository.NoteRepository
	Hub  *socket.Hub
}

func NewNoteService(repo *repository.NoteRepository, hub *socket.Hub) *NoteService {
	return &NoteService{Repo: repo, Hub: hub}
}

func (s *NoteService) List(ctx context.Context, categoryID *int64) ([]store.Note, error) {
	return s.Repo.List(ctx, categoryID)
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string, status bool, categoryID *int64) (*store.Note, error) {
	note, err := s.Repo.Create(ctx, title, content, status, categoryID)
	if err != nil {
		return nil, err
	}
	s.publish(socket.NoteCreatedType, userID, note)
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID string, id int64, title, content string, status bool, categoryID *int64) (*store.Note, error) {
	note, err := s.Repo.Update(ctx, id, title, content, status, categoryID)
	if err != nil {
		return nil, err
	}
	s.publish(socket.NoteUpdatedType, userID, note)
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID string, id int64) (*store.Note, error) {
	note, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(socket.NoteDeletedType, userID, note)
	return note, nil
}

func (s *NoteService) AssignCategory(ctx context.Context, userID string, noteID, categoryID int64) (*store.Note, error) {
	note, err := s.Repo.AssignCategory(ctx, noteID, categoryID)
	if err != nil {
		return nil, err
	}
	s.publish(socket.NoteCategoryType, userID, note)
	return note, nil
}

func (s *NoteService) publish(eventType, userID string, note *store.Note) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(eventType, note.ID, userID, note)
}
