package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run outcomes.
const (
	OutcomeVictory  = "victory"
	OutcomeGameOver = "game_over"
)

// Run is one finished attempt at the dungeon.
type Run struct {
	ID         int64
	Score      int
	RoomID     int
	Outcome    string
	Difficulty string
	CreatedAt  time.Time
}

// RunStats aggregates every recorded run.
type RunStats struct {
	Runs      int
	Victories int
	HighScore int
	AvgScore  float64
}

// RecordRun stores a finished run and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (score, room_id, outcome, difficulty) VALUES (?, ?, ?, ?)",
		r.Score, r.RoomID, r.Outcome, r.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs ordered by score descending.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, room_id, outcome, difficulty, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.RoomID, &r.Outcome, &r.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best score. Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates every run.
func (s *Store) Stats() (RunStats, error) {
	var st RunStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(MAX(score), 0),
			COALESCE(AVG(score), 0)
		 FROM runs`,
		OutcomeVictory,
	).Scan(&st.Runs, &st.Victories, &st.HighScore, &st.AvgScore)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	return st, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
