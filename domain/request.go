package domain

// ChatRequest is the body of POST /chat. SessionID may be empty or null; the
// server then generates a fresh session identity.
type ChatRequest struct {
	UserQuery string `json:"user_query"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the envelope returned on every /chat path, including the
// already-escalated short circuit and the service-unavailable case.
type ChatResponse struct {
	SessionID            string   `json:"session_id"`
	BotResponse          string   `json:"bot_response"`
	EscalationStatus     bool     `json:"escalation_status"`
	SuggestedNextActions []string `json:"suggested_next_actions"`
}

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest struct {
	SessionID string `json:"session_id"`
}

// SummarizeResponse carries the rendered summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
