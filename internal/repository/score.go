package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const scoresKey = "scores"

// ScoreRepository is the durable win ledger: one counter per display
// name, created lazily on first win, incremented and never decremented.
type ScoreRepository interface {
	IncrementWins(ctx context.Context, name string) error
	GetAll(ctx context.Context) (map[string]int, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func (that *dbScore) IncrementWins(ctx context.Context, name string) error {
	// HINCRBY is atomic per field, so concurrent winners in unrelated
	// games never lose updates to each other.
	if err := that.client.HIncrBy(ctx, scoresKey, name, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment wins: %w", err)
	}

	return nil
}

func (that *dbScore) GetAll(ctx context.Context) (map[string]int, error) {
	entries, err := that.client.HGetAll(ctx, scoresKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	scores := make(map[string]int, len(entries))
	for name, raw := range entries {
		wins, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse wins for %q: %w", name, err)
		}
		scores[name] = wins
	}

	return scores, nil
}
