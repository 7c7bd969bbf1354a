// Package prompt builds the persona instruction sent with every completion
// call and flattens stored transcripts into the ordered input the gateway
// expects.
package prompt

import (
	"fmt"
	"strings"

	"github.com/quickdesk/relay/domain"
)

// preamble is the fixed behavioral instruction for the support persona. The
// escalation sentence it mandates is what the escalation policy matches on.
const preamble = "You are an AI Customer Support Agent. Use the provided FAQs to answer questions first. " +
	"If the FAQ contains the answer, respond concisely and cite the FAQ when appropriate. " +
	"If the answer is not explicitly in the FAQs, attempt to provide a helpful, accurate answer using general knowledge and reasonable assumptions. " +
	"If you are uncertain, say 'I don't know for sure, but here's what I recommend' and provide suggested next actions. " +
	"Only escalate to a human agent when the situation is clearly outside the bot's authority, requires access to private data, or would be unsafe to answer; " +
	"in that case output exactly: 'I will now escalate this to a human agent'. " +
	"Keep responses professional, concise, and include suggested next actions when appropriate. Available FAQs:\n"

// Persona composes the process-wide persona instruction from the preamble and
// the knowledge-base entries. Called once at startup; the result is immutable
// for the process lifetime.
func Persona(faqs []FAQ) string {
	lines := make([]string, 0, len(faqs))
	for _, f := range faqs {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", f.Question, f.Answer))
	}
	return preamble + strings.Join(lines, "\n")
}

// Assemble flattens the stored conversation view into plain message texts,
// oldest first, with the new user query appended last. Role information is
// deliberately not sent per message; the persona instruction carries it.
func Assemble(turns []domain.Turn, userQuery string) []string {
	messages := make([]string, 0, len(turns)+1)
	for _, t := range turns {
		if t.Content == "" {
			continue
		}
		messages = append(messages, t.Content)
	}
	return append(messages, userQuery)
}

// Transcript renders turns as "speaker: message" lines for summarization.
func Transcript(turns []domain.Turn) []string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Speaker, t.Content))
	}
	return lines
}
