// Package domain defines the core domain models for the support relay.
package domain

import "time"

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Session represents one customer-support conversation. The escalated flag
// is monotonic: once true it never reverts.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Escalated bool      `json:"escalated"`
}

// Turn is a single message in a session, immutable once stored. TurnID is
// assigned by the store and strictly increases in insertion order, so it
// breaks ordering ties when timestamps collide.
type Turn struct {
	TurnID    int64     `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Speaker   Speaker   `json:"speaker"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
