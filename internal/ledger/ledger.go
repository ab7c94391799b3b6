// Package ledger keeps an in-memory sqlite log of the current session's rounds.
// Nothing is written to disk; the log is gone when the program exits.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tagdeck-go/internal/game"
)

// Stats summarises the session so far.
type Stats struct {
	Draws      int
	Picks      int
	DeleteHits int
	Points     int
	BestRating int
	Resets     int
}

// Ledger records draws, picks and resets.
type Ledger struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates a fresh in-memory ledger.
func Open(ctx context.Context, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	createDrawsTableSQL := `
	CREATE TABLE IF NOT EXISTS draws (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		round_id TEXT NOT NULL UNIQUE,
		pool_size INTEGER NOT NULL,
		delete_cards INTEGER NOT NULL,
		drawn_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	createSelectionsTableSQL := `
	CREATE TABLE IF NOT EXISTS selections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		round_id TEXT NOT NULL,
		slot INTEGER NOT NULL,
		tag TEXT,
		rating INTEGER,
		delta INTEGER NOT NULL,
		selected_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (round_id) REFERENCES draws (round_id)
	);`
	createResetsTableSQL := `
	CREATE TABLE IF NOT EXISTS resets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score_before INTEGER NOT NULL,
		reset_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	for _, stmt := range []string{createDrawsTableSQL, createSelectionsTableSQL, createResetsTableSQL} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create ledger schema: %w", err)
		}
	}
	return &Ledger{db: db, logger: logger}, nil
}

// Close releases the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordDraw logs a dealt hand.
func (l *Ledger) RecordDraw(ctx context.Context, round game.Round) error {
	deletes := 0
	for _, c := range round.Hand {
		if _, ok := c.(game.DeleteCard); ok {
			deletes++
		}
	}
	_, err := l.db.ExecContext(ctx,
		"INSERT INTO draws (round_id, pool_size, delete_cards) VALUES (?, ?, ?)",
		round.ID, round.PoolSize, deletes)
	if err != nil {
		return fmt.Errorf("failed to record draw %s: %w", round.ID, err)
	}
	l.logger.Debug("Recorded draw", zap.String("round", round.ID), zap.Int("deletes", deletes))
	return nil
}

// RecordSelection logs the pick that ended a round.
func (l *Ledger) RecordSelection(ctx context.Context, roundID string, pick game.Pick) error {
	var tag sql.NullString
	var rating sql.NullInt64
	if rc, ok := pick.Card.(game.RecordCard); ok {
		tag = sql.NullString{String: rc.Record.Tag, Valid: true}
		rating = sql.NullInt64{Int64: int64(rc.Record.Rating), Valid: true}
	}
	_, err := l.db.ExecContext(ctx,
		"INSERT INTO selections (round_id, slot, tag, rating, delta) VALUES (?, ?, ?, ?, ?)",
		roundID, pick.Slot, tag, rating, pick.Delta)
	if err != nil {
		return fmt.Errorf("failed to record selection for %s: %w", roundID, err)
	}
	return nil
}

// RecordReset logs a confirmed score reset.
func (l *Ledger) RecordReset(ctx context.Context, scoreBefore int) error {
	if _, err := l.db.ExecContext(ctx, "INSERT INTO resets (score_before) VALUES (?)", scoreBefore); err != nil {
		return fmt.Errorf("failed to record reset: %w", err)
	}
	return nil
}

// Stats aggregates everything recorded so far.
func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM draws) AS draws,
			COUNT(s.id) AS picks,
			SUM(CASE WHEN s.tag IS NULL THEN 1 ELSE 0 END) AS delete_hits,
			SUM(s.delta) AS points,
			MAX(s.rating) AS best_rating,
			(SELECT COUNT(*) FROM resets) AS resets
		FROM selections s;
	`
	var st Stats
	var deleteHits, points, best sql.NullInt64
	err := l.db.QueryRowContext(ctx, query).Scan(&st.Draws, &st.Picks, &deleteHits, &points, &best, &st.Resets)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query ledger stats: %w", err)
	}
	st.DeleteHits = int(deleteHits.Int64)
	st.Points = int(points.Int64)
	st.BestRating = int(best.Int64)
	return st, nil
}
