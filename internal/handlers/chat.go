package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dolegal-backend/internal/logger"
	"dolegal-backend/internal/metrics"
	"dolegal-backend/internal/models"
	"dolegal-backend/internal/services"
)

const (
	detailInvalidBody    = "Invalid request body"
	detailNotConfigured  = "AI service is not configured."
	detailUpstreamFailed = "Failed to get response from AI model."
)

type chatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	chatService chatService
	log         *logger.Logger
	metrics     *metrics.Metrics
}

func NewChatHandler(chatService chatService, log *logger.Logger, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log.WithComponent("chat"),
		metrics:     m,
	}
}

// chatRequestBody uses pointers so that absent fields can be told apart from zero values.
type chatRequestBody struct {
	Message            *string `json:"message"`
	IsFirstUserMessage *bool   `json:"isFirstUserMessage"`
	ChatID             *string `json:"chatId"`
}

func decodeChatRequest(r *http.Request) (models.ChatRequest, error) {
	var body chatRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return models.ChatRequest{}, err
	}
	if body.Message == nil || body.IsFirstUserMessage == nil || body.ChatID == nil {
		return models.ChatRequest{}, errors.New("message, isFirstUserMessage and chatId are required")
	}
	return models.ChatRequest{
		Message:            *body.Message,
		IsFirstUserMessage: *body.IsFirstUserMessage,
		ChatID:             *body.ChatID,
	}, nil
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChatRequest(r)
	if err != nil {
		h.log.WithContext(r.Context()).Warn("rejected chat request", slog.String("error", err.Error()))
		h.metrics.ObserveChatRequest(metrics.OutcomeInvalidRequest)
		writeJSON(w, http.StatusUnprocessableEntity, errorResp(detailInvalidBody))
		return
	}

	ctx := context.WithValue(r.Context(), logger.ContextKeyChatID, req.ChatID)

	resp, err := h.chatService.Chat(ctx, req)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}

	h.metrics.ObserveChatRequest(metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, resp)
}

// handleServiceError logs the full error and answers with a fixed detail.
// The error text itself never reaches the client.
func (h *ChatHandler) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrAINotConfigured):
		h.log.WithContext(ctx).Error("chat refused: GEMINI_API_KEY is not set")
		h.metrics.ObserveChatRequest(metrics.OutcomeNotConfigured)
		writeJSON(w, http.StatusInternalServerError, errorResp(detailNotConfigured))
	case errors.As(err, &upstream):
		h.log.LogError(ctx, upstream.Err, "error during AI chat generation", slog.String("call", upstream.Call))
		h.metrics.ObserveChatRequest(metrics.OutcomeUpstreamError)
		writeJSON(w, http.StatusInternalServerError, errorResp(detailUpstreamFailed))
	default:
		h.log.LogError(ctx, err, "unexpected chat failure")
		h.metrics.ObserveChatRequest(metrics.OutcomeUpstreamError)
		writeJSON(w, http.StatusInternalServerError, errorResp(detailUpstreamFailed))
	}
}
