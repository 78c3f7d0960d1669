// ABOUTME: Message is one role-tagged entry in a chat transcript
// ABOUTME: Roles mirror the chat completion roles used by the generator
package models

import (
	"errors"
	"strings"
	"time"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single transcript entry
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a Message with validation
func NewMessage(role Role, content string) (*Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, errors.New("role must be user or assistant")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("message content cannot be empty")
	}
	return &Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}, nil
}
