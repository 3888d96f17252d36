package router

import (
	"database/sql"
	"net/http"
	"os"

	authhandler "notesapp/internal/auth"
	authrepo "notesapp/internal/auth/repository"
	authservice "notesapp/internal/auth/service"
	categoryhandler "notesapp/internal/category"
	categoryrepo "notesapp/internal/category/repository"
	categoryservice "notesapp/internal/category/service"
	notehandler "notesapp/internal/note"
	noterepo "notesapp/internal/note/repository"
	noteservice "notesapp/internal/note/service"
	"notesapp/middleware"
	"notesapp/socket"
)

func Setup(db *sql.DB, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	// WebSocket note feed
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(middleware.UserIDKey).(string)
		socket.ServeWs(hub, w, r, userID)
	})
	mux.Handle("GET /ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	noteRepo := noterepo.NewNoteRepository(db)
	noteService := noteservice.NewNoteService(noteRepo, hub)
	noteHandler := notehandler.NewNoteHandler(noteService)

	categoryRepo := categoryrepo.NewCategoryRepository(db)
	categoryService := categoryservice.NewCategoryService(categoryRepo)
	categoryHandler := categoryhandler.NewCategoryHandler(categoryService)

	authRepo := authrepo.NewAuthRepository(db)
	authService := authservice.NewAuthService(authRepo, os.Getenv("JWT_SECRET"))
	authHandler := authhandler.NewAuthHandler(authService)

	auth := middleware.AuthMiddleware

	mux.Handle("GET /notes", auth(http.HandlerFunc(noteHandler.ListNotes)))
	mux.Handle("POST /notes", auth(http.HandlerFunc(noteHandler.CreateNote)))
	mux.Handle("PUT /notes/{id}", auth(http.HandlerFunc(noteHandler.UpdateNote)))
	mux.Handle("DELETE /notes/{id}", auth(http.HandlerFunc(noteHandler.DeleteNote)))
	mux.Handle("POST /notes/{id}/categories", auth(http.HandlerFunc(noteHandler.AssignCategory)))

	mux.Handle("GET /categories", auth(http.HandlerFunc(categoryHandler.ListCategories)))
	mux.Handle("POST /categories", auth(http.HandlerFunc(categoryHandler.CreateCategory)))
	mux.Handle("GET /categories/{categoryId}/notes", auth(http.HandlerFunc(categoryHandler.ListNotesByCategory)))

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to Notes API"))
	})

	return middleware.CORSMiddleware(mux)
}
