// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"errors"

	"github.com/quickdesk/relay/domain"
)

var (
	// ErrDuplicateSession is returned when creating a session whose id
	// already exists. Callers that generate UUID identities treat this as
	// non-fatal.
	ErrDuplicateSession = errors.New("session id already exists")

	// ErrUnknownSession is returned when appending a turn to a session
	// that was never created.
	ErrUnknownSession = errors.New("unknown session")
)

// Store defines the interface for session and turn persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error)
	MarkEscalated(ctx context.Context, sessionID string) error

	// Turn operations
	AppendTurn(ctx context.Context, sessionID string, speaker domain.Speaker, content string) (*domain.Turn, error)
	ListTurns(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// Lifecycle
	Close() error
}
