package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dolegal-backend/internal/metrics"
	"dolegal-backend/internal/models"
)

// Generation call kinds, used in errors and metrics.
const (
	CallMessage = "message"
	CallTitle   = "title"
)

const titlePromptTemplate = "Generate a very short, concise title (3-5 words max) for a legal conversation starting with: '%s'. Use the same language."

var placeholderCitations = []string{
	"Armenian Civil Code, Article 123",
	"Law on Legal Acts, Section 4",
}

// TextGenerator is a single prompt-in, text-out round trip to a language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	generator TextGenerator
	metrics   *metrics.Metrics
}

// NewChatService builds the chat orchestration. A nil generator means the
// model is not configured and every Chat call fails with ErrAINotConfigured.
func NewChatService(generator TextGenerator, m *metrics.Metrics) *ChatService {
	return &ChatService{
		generator: generator,
		metrics:   m,
	}
}

// Chat answers the message and, for the first message of a conversation,
// derives a title with a second call. The calls run one after the other and
// a failure in either fails the request.
func (s *ChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if s.generator == nil {
		return nil, ErrAINotConfigured
	}

	reply, err := s.generate(ctx, CallMessage, req.Message)
	if err != nil {
		return nil, err
	}

	var newTitle *string
	if req.IsFirstUserMessage {
		raw, err := s.generate(ctx, CallTitle, buildTitlePrompt(req.Message))
		if err != nil {
			return nil, err
		}
		title := cleanTitle(raw)
		newTitle = &title
	}

	return &models.ChatResponse{
		ResponseText: reply,
		Citations:    Citations(),
		NewTitle:     newTitle,
		ChatID:       req.ChatID,
	}, nil
}

func (s *ChatService) generate(ctx context.Context, call, prompt string) (string, error) {
	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	s.metrics.ObserveModelCall(call, time.Since(start), err)
	if err != nil {
		return "", &UpstreamError{Call: call, Err: err}
	}
	return text, nil
}

// Citations returns a fresh copy of the placeholder citation list.
func Citations() []string {
	return append([]string(nil), placeholderCitations...)
}

func buildTitlePrompt(message string) string {
	return fmt.Sprintf(titlePromptTemplate, message)
}

func cleanTitle(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `"`, "")
}
