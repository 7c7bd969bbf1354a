package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/quickdesk/relay/prompt"
)

// NoConversationSummary is returned when a session has no stored turns.
const NoConversationSummary = "No conversation to summarize."

// summarizeInstruction is appended to the persona when asking the model for
// a summary.
const summarizeInstruction = "\n\nSummarize the conversation below in 3 concise bullet points:\n"

// Summarize renders a session transcript and asks the gateway for a summary.
// Read-only: it never appends turns and never touches the escalation flag.
// Without a configured gateway it falls back to a deterministic local
// summary, the first five transcript lines joined by spaces.
func (s *Service) Summarize(ctx context.Context, sessionID string) (string, error) {
	turns, err := s.store.ListTurns(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	lines := prompt.Transcript(turns)
	if len(lines) == 0 {
		return NoConversationSummary, nil
	}

	if !s.gateway.Configured() {
		head := lines
		if len(head) > 5 {
			head = head[:5]
		}
		return strings.Join(head, " "), nil
	}

	request := s.persona + summarizeInstruction + strings.Join(lines, "\n")
	summary, err := s.gateway.Complete(ctx, s.persona, []string{request})
	if err != nil {
		return "", fmt.Errorf("failed to summarize: %w", err)
	}
	return summary, nil
}
