package service

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"notesapp/internal/note/repository"
	"notesapp/pkg/logger"
	"notesapp/socket"
	"notesapp/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestCreatePublishesEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hub := socket.NewHub() // not running: Publish queues onto the buffered channel
	svc := NewNoteService(repository.NewNoteRepository(db), hub)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO notes`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "category_id", "created_at", "updated_at"}).
			AddRow(1, "A", "B", true, nil, now, now))

	note, err := svc.Create(context.Background(), "user1", "A", "B", true, nil)
	require.NoError(t, err)

	select {
	case event := <-hub.Broadcast:
		assert.Equal(t, socket.NoteCreatedType, event.Type)
		assert.Equal(t, note.ID, event.NoteID)
		assert.Equal(t, "user1", event.UserID)

		var payload store.Note
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "A", payload.Title)
	default:
		t.Fatal("expected a NOTE_CREATED event on the feed")
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithoutHub(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A nil hub (repository tests, CLI tooling) must not panic.
	svc := NewNoteService(repository.NewNoteRepository(db), nil)

	now := time.Now()
	mock.ExpectQuery(`DELETE FROM notes`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "status", "category_id", "created_at", "updated_at"}).
			AddRow(3, "Gone", "x", true, nil, now, now))

	note, err := svc.Delete(context.Background(), "user1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), note.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
