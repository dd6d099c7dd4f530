package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService sends prompts through the OpenRouter chat completions
// API. It implements Completer.
type OpenRouterService struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, logger *zap.Logger) *OpenRouterService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &OpenRouterService{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		s.logger.Warn("openrouter transport failure", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusPaymentRequired,
		code == http.StatusTooManyRequests:
		s.logger.Warn("openrouter rejected request",
			zap.Int("status", code),
			zap.String("model", s.model),
		)
		return "", fmt.Errorf("%w: status %d", ErrServiceRejected, code)
	case code >= 400:
		s.logger.Warn("openrouter request failed",
			zap.Int("status", code),
			zap.String("model", s.model),
		)
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, code)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrServiceUnavailable)
	}
	return text, nil
}
