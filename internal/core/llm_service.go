package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/config"
)

const (
	defaultChatModel = "google/gemini-2.5-flash"
	maxOutputTokens  = 1000

	// The original relied on the platform's default outbound timeout; an
	// explicit bound keeps a stuck provider from pinning request handlers.
	completionTimeout = 60 * time.Second
)

// completionRequest is the OpenRouter chat-completions request body
// (OpenAI-compatible schema).
type completionRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// LLMService performs the single blocking round trip to the completion
// provider. No retries, no streaming.
type LLMService struct {
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLLMService(logger *zap.Logger) *LLMService {
	return &LLMService{
		model: defaultChatModel,
		httpClient: &http.Client{
			Timeout: completionTimeout,
		},
		logger: logger,
	}
}

// ChatCompletion sends the composed message list and returns the first
// choice's content. A missing credential fails before any I/O; a non-2xx
// provider response becomes a ProviderError carrying status and body.
func (s *LLMService) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	apiKey := config.AppConfig.OpenRouterAPIKey
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	jsonBody, err := json.Marshal(completionRequest{
		Model:     s.model,
		MaxTokens: maxOutputTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.OpenRouterBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	// Attribution headers OpenRouter uses to identify the calling app.
	req.Header.Set("HTTP-Referer", config.AppConfig.SiteURL)
	req.Header.Set("X-Title", config.AppConfig.AppTitle)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach completion provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion response contained no choices")
	}

	s.logger.Debug("completion received",
		zap.String("model", s.model),
		zap.String("finish_reason", completion.Choices[0].FinishReason))

	return completion.Choices[0].Message.Content, nil
}
