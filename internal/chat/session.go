// ABOUTME: Session is the append-only transcript of one interactive run
// ABOUTME: Created once per process and passed explicitly to the service
package chat

import (
	"github.com/harper/menuchat/internal/models"
)

// Session holds the ordered messages of a conversation
type Session struct {
	messages []models.Message
}

// NewSession starts an empty transcript
func NewSession() *Session {
	return &Session{}
}

// Append adds a message to the end of the transcript
func (s *Session) Append(role models.Role, content string) error {
	msg, err := models.NewMessage(role, content)
	if err != nil {
		return err
	}
	s.messages = append(s.messages, *msg)
	return nil
}

// Messages returns a copy of the transcript in order
func (s *Session) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages
func (s *Session) Len() int {
	return len(s.messages)
}
