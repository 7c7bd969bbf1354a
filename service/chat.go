package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/quickdesk/relay/domain"
	"github.com/quickdesk/relay/policy"
	"github.com/quickdesk/relay/prompt"
)

// Fixed response texts.
const (
	alreadyEscalatedMessage = "This session is already escalated to a human agent."
	unconfiguredMessage     = "The AI completion service is not configured. " +
		"Set GEMINI_API_KEY in the server environment and restart to enable replies."
)

// ChatResult is the chat flow's structured outcome. Unavailable marks the
// completion-service-not-configured case, which the HTTP layer surfaces as
// 503 with the same response shape.
type ChatResult struct {
	Response    domain.ChatResponse
	Unavailable bool
}

// Chat runs one turn of the support conversation state machine.
//
// Sessions start Active and move to Escalated at most once; an Escalated
// session short-circuits without touching the gateway and without storing
// new turns. An unconfigured gateway is detected before any store mutation.
func (s *Service) Chat(ctx context.Context, sessionID, userQuery string) (*ChatResult, error) {
	if userQuery == "" {
		return nil, ErrInvalidQuery
	}

	// A known escalated session answers read-only, configured or not.
	if sessionID != "" {
		session, err := s.store.GetSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("resolve session: %w", err)
		}
		if session != nil && session.Escalated {
			return escalatedResult(sessionID), nil
		}
	}

	if !s.gateway.Configured() {
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		decision, err := s.policy.Evaluate(ctx, policy.Input{Configured: false})
		if err != nil {
			return nil, fmt.Errorf("evaluate policy: %w", err)
		}
		return &ChatResult{
			Unavailable: true,
			Response: domain.ChatResponse{
				SessionID:            sessionID,
				BotResponse:          unconfiguredMessage,
				EscalationStatus:     decision.Escalate,
				SuggestedNextActions: decision.SuggestedActions,
			},
		}, nil
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.store.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if session.Escalated {
		return escalatedResult(sessionID), nil
	}

	if _, err := s.store.AppendTurn(ctx, sessionID, domain.SpeakerUser, userQuery); err != nil {
		return nil, fmt.Errorf("store user turn: %w", err)
	}

	turns, err := s.store.ListTurns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	reply, err := s.gateway.Complete(ctx, s.persona, prompt.Assemble(turns, userQuery))
	if err != nil {
		return s.escalateOnFailure(ctx, sessionID, err)
	}

	decision, err := s.policy.Evaluate(ctx, policy.Input{Configured: true, Reply: reply})
	if err != nil {
		return nil, fmt.Errorf("evaluate policy: %w", err)
	}

	escalated := session.Escalated
	if decision.Escalate && !escalated {
		if err := s.store.MarkEscalated(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("mark escalated: %w", err)
		}
		escalated = true
	}

	if _, err := s.store.AppendTurn(ctx, sessionID, domain.SpeakerBot, reply); err != nil {
		return nil, fmt.Errorf("store bot turn: %w", err)
	}

	return &ChatResult{
		Response: domain.ChatResponse{
			SessionID:            sessionID,
			BotResponse:          reply,
			EscalationStatus:     escalated,
			SuggestedNextActions: decision.SuggestedActions,
		},
	}, nil
}

// escalatedResult is the short-circuit reply for an already-escalated
// session. It never mutates the store.
func escalatedResult(sessionID string) *ChatResult {
	return &ChatResult{
		Response: domain.ChatResponse{
			SessionID:            sessionID,
			BotResponse:          alreadyEscalatedMessage,
			EscalationStatus:     true,
			SuggestedNextActions: []string{"End chat"},
		},
	}
}

// escalateOnFailure handles a failed completion call: the session escalates
// unconditionally and an apology turn embedding the error detail is stored
// so the handoff is auditable.
func (s *Service) escalateOnFailure(ctx context.Context, sessionID string, cause error) (*ChatResult, error) {
	apology := fmt.Sprintf("I apologize, a technical error occurred while contacting the AI. Error: %v", cause)

	decision, err := s.policy.Evaluate(ctx, policy.Input{Configured: true, CallFailed: true})
	if err != nil {
		return nil, fmt.Errorf("evaluate policy: %w", err)
	}

	if err := s.store.MarkEscalated(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("mark escalated: %w", err)
	}
	if _, err := s.store.AppendTurn(ctx, sessionID, domain.SpeakerBot, apology); err != nil {
		return nil, fmt.Errorf("store apology turn: %w", err)
	}

	return &ChatResult{
		Response: domain.ChatResponse{
			SessionID:            sessionID,
			BotResponse:          apology,
			EscalationStatus:     decision.Escalate,
			SuggestedNextActions: decision.SuggestedActions,
		},
	}, nil
}
