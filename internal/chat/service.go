// ABOUTME: Question answering over the menu index
// ABOUTME: Records the exchange in the session, retrieves context, and generates the answer
package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harper/menuchat/internal/logger"
	"github.com/harper/menuchat/internal/models"
)

// Generator produces a completion for a rendered prompt
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Answer is a generated reply with the chunks it was grounded on
type Answer struct {
	Text    string
	Sources []models.SearchResult
}

// Service ties retrieval and generation together
type Service struct {
	retriever Retriever
	generator Generator
	prompt    *PromptTemplate
	logger    *log.Logger
}

// NewService creates a service using the default prompt
func NewService(retriever Retriever, generator Generator, l *log.Logger) *Service {
	if l == nil {
		l = logger.Discard()
	}
	return &Service{
		retriever: retriever,
		generator: generator,
		prompt:    DefaultPromptTemplate(),
		logger:    l,
	}
}

// Ask appends the question to the session, answers it from retrieved
// context, and appends the answer. On failure the error is returned and the
// transcript keeps whatever was already appended.
func (s *Service) Ask(ctx context.Context, session *Session, question string) (*Answer, error) {
	if err := session.Append(models.RoleUser, question); err != nil {
		return nil, err
	}

	results, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("retrieved context", "chunks", len(results))

	prompt, err := s.prompt.Render(results, question)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	if text == "" {
		text = NoAnswer
	}

	if err := session.Append(models.RoleAssistant, text); err != nil {
		return nil, err
	}
	return &Answer{Text: text, Sources: results}, nil
}
