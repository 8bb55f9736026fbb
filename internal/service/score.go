package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const recordWinTimeout = 5 * time.Second

type scoreRepo interface {
	IncrementWins(ctx context.Context, name string) error
	GetAll(ctx context.Context) (map[string]int, error)
}

type ScoreService interface {
	RecordWin(name string)
	Summary(ctx context.Context) (map[string]int, error)
}

type scoreService struct {
	logger *slog.Logger
	repo   scoreRepo
}

func NewScoreService(logger *slog.Logger, repo scoreRepo) ScoreService {
	return &scoreService{
		logger: logger,
		repo:   repo,
	}
}

// RecordWin submits the durability write in the background. The
// in-memory game result is authoritative and has already been sent to
// the players, so a slow or failing store must not stall anyone's game.
func (that *scoreService) RecordWin(name string) {
	log := that.logger.With("method", "RecordWin", "name", name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordWinTimeout)
		defer cancel()

		if err := that.repo.IncrementWins(ctx, name); err != nil {
			log.Error("failed to record win", "error", err)
		}
	}()
}

func (that *scoreService) Summary(ctx context.Context) (map[string]int, error) {
	scores, err := that.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores summary: %w", err)
	}

	return scores, nil
}
