package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type scoresProvider interface {
	Summary(ctx context.Context) (map[string]int, error)
}

func Start(ctx context.Context, port string, scores scoresProvider) error {
	handlers := newHandlers(scores)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.pingHandler)
	mux.HandleFunc("/scores", handlers.scoresHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
