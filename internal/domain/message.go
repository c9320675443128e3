package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is one entry in a topic's conversation log. Logs are append-only
// and ordered; a message is never mutated after it is appended.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a message with a fresh id.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// UserMessageCount returns the number of user-authored messages in the log.
func UserMessageCount(log []Message) int {
	n := 0
	for _, m := range log {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// JoinUserContent concatenates all user-authored message contents in log
// order, separated by single spaces. This is the aggregated answer for
// conversational phases.
func JoinUserContent(log []Message) string {
	var parts []string
	for _, m := range log {
		if m.Role == RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, " ")
}
