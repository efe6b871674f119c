package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/game"
)

// GameRecord is a stored terminal game result.
type GameRecord struct {
	GameID  string
	Turns   int
	Scores  map[string]int
	Winners []string
	EndedAt time.Time
}

// ResultRepository persists finished games.
type ResultRepository struct {
	db *DB
}

// NewResultRepository creates a result repository.
func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResult stores the terminal result of a finished game. Saving the same
// game twice overwrites the earlier row.
func (r *ResultRepository) SaveResult(ctx context.Context, gameID string, result *game.GameResult) error {
	if result == nil {
		return fmt.Errorf("save result for %s: result is nil", gameID)
	}
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores for %s: %w", gameID, err)
	}

	const query = `
INSERT INTO game_results (game_id, turns, scores, winners, ended_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (game_id) DO UPDATE
SET turns = EXCLUDED.turns,
    scores = EXCLUDED.scores,
    winners = EXCLUDED.winners,
    ended_at = EXCLUDED.ended_at
`
	if _, err := r.db.pool.Exec(ctx, query,
		gameID, result.Turns, scores, result.Winners, result.EndedAt); err != nil {
		return fmt.Errorf("save result for %s: %w", gameID, err)
	}

	r.db.logger.Info("game result saved",
		zap.String("game_id", gameID),
		zap.Int("turns", result.Turns),
		zap.Strings("winners", result.Winners),
	)
	return nil
}

// GetResult loads a stored result by game identifier.
func (r *ResultRepository) GetResult(ctx context.Context, gameID string) (*GameRecord, error) {
	const query = `
SELECT game_id, turns, scores, winners, ended_at
FROM game_results
WHERE game_id = $1
`
	var (
		record    GameRecord
		rawScores []byte
	)
	row := r.db.pool.QueryRow(ctx, query, gameID)
	if err := row.Scan(&record.GameID, &record.Turns, &rawScores, &record.Winners, &record.EndedAt); err != nil {
		return nil, fmt.Errorf("load result for %s: %w", gameID, err)
	}
	if err := json.Unmarshal(rawScores, &record.Scores); err != nil {
		return nil, fmt.Errorf("decode scores for %s: %w", gameID, err)
	}
	return &record, nil
}

// ListRecent returns the most recently finished games, newest first.
func (r *ResultRepository) ListRecent(ctx context.Context, limit int) ([]*GameRecord, error) {
	const query = `
SELECT game_id, turns, scores, winners, ended_at
FROM game_results
ORDER BY ended_at DESC
LIMIT $1
`
	rows, err := r.db.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}
	defer rows.Close()

	var records []*GameRecord
	for rows.Next() {
		var (
			record    GameRecord
			rawScores []byte
		)
		if err := rows.Scan(&record.GameID, &record.Turns, &rawScores, &record.Winners, &record.EndedAt); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		if err := json.Unmarshal(rawScores, &record.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for %s: %w", record.GameID, err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
