package memory

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the full persisted record for one session.
// MessageCount is stored redundantly so listings don't need to load Messages.
type Conversation struct {
	Timestamp    string    `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"message_count"`
}

// Summary is the lightweight listing/search view of a conversation.
type Summary struct {
	SessionID      string `json:"session_id"`
	Timestamp      string `json:"timestamp"`
	MessageCount   int    `json:"message_count"`
	FirstMessage   string `json:"first_message,omitempty"`
	LastResponse   string `json:"last_response,omitempty"`
	MatchedContent string `json:"matched_content,omitempty"`
}

// ErrNotFound is returned when no record exists for a session ID, or the
// stored record is unreadable. Absence is an expected condition, never fatal.
var ErrNotFound = errors.New("memory: not found")

// NewSessionID derives a session identifier from the current time.
func NewSessionID() string {
	return time.Now().Format("20060102_150405")
}

// timestamp returns the current instant in the format stored on disk.
func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// snippet truncates s to at most n runes for summaries, never splitting a
// multi-byte character.
func snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
