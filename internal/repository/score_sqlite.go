package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type sqliteScore struct {
	conn *sql.DB
}

func NewSQLiteScoreRepository(conn *sql.DB) ScoreRepository {
	return &sqliteScore{
		conn: conn,
	}
}

func (that *sqliteScore) IncrementWins(ctx context.Context, name string) error {
	query := `INSERT INTO scores (name, wins) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET wins = wins + 1`

	_, err := that.conn.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("can't increment wins: %w", err)
	}

	return nil
}

func (that *sqliteScore) GetAll(ctx context.Context) (map[string]int, error) {
	query := `SELECT name, wins FROM scores`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var name string
		var wins int
		if err = rows.Scan(&name, &wins); err != nil {
			return nil, fmt.Errorf("can't scan score row: %w", err)
		}
		scores[name] = wins
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read scores: %w", err)
	}

	return scores, nil
}
