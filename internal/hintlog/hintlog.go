// Package hintlog provides an optional SQLite-backed audit log of
// served hints. It stores only the engine's own outputs, never the
// inbound note history.
package hintlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hints (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	category     TEXT NOT NULL,
	text         TEXT NOT NULL,
	hint_text    TEXT NOT NULL,
	trigger_at   TEXT NOT NULL,
	sample_count INTEGER NOT NULL,
	score        REAL NOT NULL,
	served_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_hints_served_at ON hints(served_at);
`

// Entry is one served hint.
type Entry struct {
	Category    models.Category `json:"categoryType"`
	Text        string          `json:"text"`
	HintText    string          `json:"hint_text"`
	TriggerAt   string          `json:"trigger_at"`
	SampleCount int             `json:"sample_count"`
	Score       float64         `json:"score"`
	ServedAt    time.Time       `json:"served_at"`
}

// DB wraps a sql.DB with hint-log operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("hintlog: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("hintlog: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("hintlog: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record appends one served hint.
func (db *DB) Record(e Entry) error {
	_, err := db.conn.Exec(`
		INSERT INTO hints (category, text, hint_text, trigger_at, sample_count, score, served_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, string(e.Category), e.Text, e.HintText, e.TriggerAt, e.SampleCount, e.Score, e.ServedAt)
	if err != nil {
		return fmt.Errorf("hintlog: record: %w", err)
	}
	return nil
}

// Recent returns the most recently served hints, newest first.
// A non-positive limit defaults to 20.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT category, text, hint_text, trigger_at, sample_count, score, served_at
		FROM hints
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("hintlog: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var cat string
		if err := rows.Scan(&cat, &e.Text, &e.HintText, &e.TriggerAt, &e.SampleCount, &e.Score, &e.ServedAt); err != nil {
			return nil, fmt.Errorf("hintlog: scan: %w", err)
		}
		e.Category = models.Category(cat)
		out = append(out, e)
	}
	return out, rows.Err()
}
