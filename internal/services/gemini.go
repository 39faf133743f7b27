package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var errEmptyResponse = errors.New("Gemini returned no text")

// GeminiService performs single-prompt generation calls against a hosted Gemini model.
type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

func NewGeminiService(apiKey, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, ErrAINotConfigured
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
	}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) ModelName() string {
	return s.modelName
}

// Generate issues one generation call and returns the concatenated text of the reply.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("%w (finish reason: %s)", errEmptyResponse, finishReason(resp))
	}
	return text, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return "no candidates"
	}
	return fmt.Sprint(resp.Candidates[0].FinishReason)
}
