package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapp/config/database"
	"notesapp/pkg/logger"
	"notesapp/router"
	"notesapp/socket"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	logger.Init()
	defer logger.Log.Sync()
	if err != nil {
		// Not fatal: production supplies real environment variables.
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	if os.Getenv("JWT_SECRET") == "" {
		logger.Sugar.Fatal("JWT_SECRET environment variable must be set")
	}

	db := database.Connect()

	hub := socket.NewHub()
	go hub.Run()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router.Setup(db, hub),
	}

	go func() {
		logger.Sugar.Infof("Notes API listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server failed: %v", err)
		}
	}()

	// The pool is released exactly once, after in-flight requests drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Sugar.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar.Errorf("Server shutdown failed: %v", err)
	}

	if err := db.Close(); err != nil {
		logger.Sugar.Errorf("Error closing database pool: %v", err)
	} else {
		logger.Sugar.Info("PostgreSQL pool closed")
	}
}
