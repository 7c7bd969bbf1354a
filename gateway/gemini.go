package gateway

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the completion model used unless configured otherwise.
const DefaultModel = "gemini-2.5-flash"

// Gemini implements Gateway on the Google GenAI API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a configured Gemini gateway.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Configured reports that credentials are present.
func (g *Gemini) Configured() bool { return true }

// Complete sends the message texts and system instruction to the model and
// returns its reply. A single attempt, bounded by the configured timeout
// unless the caller's context already carries a deadline.
func (g *Gemini) Complete(ctx context.Context, systemInstruction string, messages []string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		if m == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(m, genai.RoleUser))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("completion returned no text")
	}
	return text, nil
}
