package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/quickdesk/relay/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSession(ctx, "s1")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.SessionID != "s1" || created.Escalated {
		t.Fatalf("unexpected session: %+v", created)
	}

	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.SessionID != "s1" || got.Escalated {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestCreateSessionDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := s.CreateSession(ctx, "s1"); !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}
}

func TestGetSessionAbsent(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}
}

func TestGetOrCreateSessionConverges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.GetOrCreateSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	second, err := s.GetOrCreateSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if first.SessionID != second.SessionID {
		t.Fatalf("expected same session, got %q and %q", first.SessionID, second.SessionID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("second call must not recreate the row")
	}
}

func TestAppendTurnUnknownSession(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AppendTurn(context.Background(), "nope", domain.SpeakerUser, "hi")
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestListTurnsPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// Appends land within the same timestamp resolution; ordering must
	// still follow insertion sequence.
	for i := 0; i < 10; i++ {
		speaker := domain.SpeakerUser
		if i%2 == 1 {
			speaker = domain.SpeakerBot
		}
		if _, err := s.AppendTurn(ctx, "s1", speaker, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	turns, err := s.ListTurns(ctx, "s1")
	if err != nil {
		t.Fatalf("ListTurns failed: %v", err)
	}
	if len(turns) != 10 {
		t.Fatalf("expected 10 turns, got %d", len(turns))
	}
	for i, turn := range turns {
		if turn.Content != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("turn %d out of order: %+v", i, turn)
		}
	}
}

func TestListTurnsEmpty(t *testing.T) {
	s := newTestStore(t)

	turns, err := s.ListTurns(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ListTurns failed: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected no turns, got %d", len(turns))
	}
}

func TestMarkEscalatedIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.MarkEscalated(ctx, "s1"); err != nil {
			t.Fatalf("MarkEscalated failed: %v", err)
		}
		got, err := s.GetSession(ctx, "s1")
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if !got.Escalated {
			t.Fatalf("expected escalated session")
		}
	}
}
