// Package service implements the session/turn orchestration for the chat
// relay: session lifecycle, history reconstruction, the completion call and
// the escalation decision.
package service

import (
	"errors"
	"sync"

	"github.com/quickdesk/relay/gateway"
	"github.com/quickdesk/relay/policy"
	"github.com/quickdesk/relay/store"
)

// ErrInvalidQuery is returned when the user query is missing or empty.
var ErrInvalidQuery = errors.New("missing or invalid user query")

// Service drives the chat and summarize flows.
type Service struct {
	store   store.Store
	gateway gateway.Gateway
	policy  *policy.Engine
	persona string

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is a per-session mutex with a holder count so the entry can be
// dropped from the map once the last waiter releases it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// New creates the orchestration service. The persona instruction is composed
// once at startup and treated as immutable here.
func New(st store.Store, gw gateway.Gateway, pe *policy.Engine, persona string) *Service {
	return &Service{
		store:   st,
		gateway: gw,
		policy:  pe,
		persona: persona,
		locks:   make(map[string]*sessionLock),
	}
}

// lockSession serializes requests on the same session identity so concurrent
// chats cannot interleave turn ordering or lose an escalation flag update.
// Requests on different sessions do not contend, and an identity's entry is
// evicted once no request holds or waits on it.
func (s *Service) lockSession(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}
