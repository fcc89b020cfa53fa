package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"moussamarbre.com/site-api/internal/metrics"
)

// ChatService runs the whole chat pipeline for one request: build the catalog
// context, compose the prompt, call the completion provider, post-process the
// reply. Strictly sequential and stateless across requests.
type ChatService struct {
	contextService *ContextService
	llmService     *LLMService
	logger         *zap.Logger
}

func NewChatService(contextService *ContextService, llmService *LLMService, logger *zap.Logger) *ChatService {
	return &ChatService{
		contextService: contextService,
		llmService:     llmService,
		logger:         logger,
	}
}

func (s *ChatService) Respond(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	metrics.ChatRequests.Inc()
	lang := ParseLanguage(req.Language)

	contextBlock, err := s.contextService.BuildContext()
	if err != nil {
		metrics.ChatErrors.WithLabelValues("context").Inc()
		return nil, fmt.Errorf("failed to build chat context: %w", err)
	}

	messages := WithSystemPrompt(ComposeSystemPrompt(contextBlock, lang), req.Messages)

	start := time.Now()
	rawReply, err := s.llmService.ChatCompletion(ctx, messages)
	if err != nil {
		metrics.ChatErrors.WithLabelValues("completion").Inc()
		return nil, err
	}
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	reply := PostProcessReply(rawReply, lang)

	s.logger.Debug("chat reply generated",
		zap.String("language", string(lang)),
		zap.Int("history_messages", len(req.Messages)),
		zap.Duration("completion_time", time.Since(start)))

	return &ChatResponse{Reply: reply}, nil
}
