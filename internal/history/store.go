// Package history persists conversation transcripts in SQLite. Records
// are append-only, one row per message, grouped by session.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one message of a conversation transcript.
type Record struct {
	ID           string
	Timestamp    time.Time
	SessionID    string
	Role         string // "system", "user", "assistant"
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Session summarizes one conversation for listings.
type Session struct {
	ID       string
	Started  time.Time
	Messages int
}

// Store is an append-only SQLite store for conversation records. All
// public methods are safe for concurrent use (SQLite serializes writes).
type Store struct {
	db *sql.DB
}

// Open creates a history store at the given database path. The schema
// is created automatically on first use.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore creates a history store on an existing connection, running
// migrations on first use.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id            TEXT PRIMARY KEY,
		timestamp     TEXT NOT NULL,
		session_id    TEXT NOT NULL,
		role          TEXT NOT NULL,
		content       TEXT NOT NULL,
		model         TEXT,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append persists a record. If rec.ID is empty, a UUIDv7 is generated.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate message ID: %w", err)
		}
		rec.ID = id.String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages
			(id, timestamp, session_id, role, content, model, input_tokens, output_tokens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.SessionID,
		rec.Role,
		rec.Content,
		rec.Model,
		rec.InputTokens,
		rec.OutputTokens,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// BySession returns a session's records in chronological order.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, session_id, role, content, model, input_tokens, output_tokens
		 FROM messages
		 WHERE session_id = ?
		 ORDER BY timestamp ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Sessions lists conversations, most recent first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, MIN(timestamp), COUNT(*)
		 FROM messages
		 GROUP BY session_id
		 ORDER BY MIN(timestamp) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started string
		if err := rows.Scan(&sess.ID, &started, &sess.Messages); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			sess.Started = t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var ts string
	err := rows.Scan(
		&rec.ID, &ts, &rec.SessionID, &rec.Role, &rec.Content,
		&rec.Model, &rec.InputTokens, &rec.OutputTokens,
	)
	if err != nil {
		return rec, fmt.Errorf("scan message: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		rec.Timestamp = t
	}
	return rec, nil
}
