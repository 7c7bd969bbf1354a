package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/quickdesk/relay/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection avoids SQLITE_BUSY
	// under concurrent requests and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			escalated INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			turn_id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			speaker TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, turn_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession creates a new session. Returns ErrDuplicateSession if the
// identity is already taken.
func (s *SQLiteStore) CreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session := &domain.Session{
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, created_at, escalated) VALUES (?, ?, 0)`,
		session.SessionID, session.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, ErrDuplicateSession
		}
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) if absent.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	var escalated int
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, created_at, escalated FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.CreatedAt, &escalated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session.Escalated = escalated != 0
	return &session, nil
}

// GetOrCreateSession resolves an existing session or creates it atomically.
// The INSERT OR IGNORE makes concurrent first requests for the same identity
// converge on a single row instead of racing.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (session_id, created_at, escalated) VALUES (?, ?, 0)`,
		sessionID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrUnknownSession
	}
	return session, nil
}

// MarkEscalated sets the escalated flag. Idempotent: marking an already
// escalated session is a no-op.
func (s *SQLiteStore) MarkEscalated(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET escalated = 1 WHERE session_id = ?`,
		sessionID)
	return err
}

// AppendTurn durably appends a turn to a session. Returns ErrUnknownSession
// if the session does not exist.
func (s *SQLiteStore) AppendTurn(ctx context.Context, sessionID string, speaker domain.Speaker, content string) (*domain.Turn, error) {
	turn := &domain.Turn{
		SessionID: sessionID,
		Speaker:   speaker,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, speaker, content, created_at) VALUES (?, ?, ?, ?)`,
		turn.SessionID, turn.Speaker, turn.Content, turn.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, ErrUnknownSession
		}
		return nil, err
	}
	turn.TurnID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return turn, nil
}

// ListTurns retrieves all turns for a session, oldest first. Ordering is by
// turn_id so insertion order is preserved even when timestamps collide.
func (s *SQLiteStore) ListTurns(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT turn_id, session_id, speaker, content, created_at FROM turns WHERE session_id = ? ORDER BY turn_id ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var turn domain.Turn
		if err := rows.Scan(&turn.TurnID, &turn.SessionID, &turn.Speaker, &turn.Content, &turn.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
