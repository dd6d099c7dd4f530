package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService sends prompts through the Google GenAI API. It implements
// Completer and retries transient failures with jittered exponential
// backoff. A simple circuit breaker stops hammering the API after repeated
// consecutive failures.
type GeminiService struct {
	client            *genai.Client
	model             string
	logger            *zap.Logger
	maxRetries        int
	baseDelay         time.Duration
	maxDelay          time.Duration
	requestTimeout    time.Duration
	consecutiveErrors atomic.Int32
	circuitBreakerMax int32
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiService{
		client:            client,
		model:             cfg.Model,
		logger:            logger,
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          20 * time.Second,
		requestTimeout:    30 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", ErrServiceRejected)
	}

	if s.consecutiveErrors.Load() >= s.circuitBreakerMax {
		return "", fmt.Errorf("%w: circuit breaker open after %d consecutive errors",
			ErrServiceUnavailable, s.consecutiveErrors.Load())
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.consecutiveErrors.Add(1)
				return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, timeoutCtx.Err())
			}
		}

		genConfig := &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.2)),
		}
		result, err := s.client.Models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)

		if err == nil {
			text := strings.TrimSpace(result.Text())
			if text == "" {
				s.consecutiveErrors.Add(1)
				return "", fmt.Errorf("%w: empty completion", ErrServiceUnavailable)
			}
			s.consecutiveErrors.Store(0)
			return text, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors.Add(1)
			return "", classifyGenAIError(err)
		}
		s.logger.Debug("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.consecutiveErrors.Add(1)
	return "", fmt.Errorf("%w: max retries exceeded: %v", ErrServiceUnavailable, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "context canceled") ||
		strings.Contains(msg, "context deadline exceeded") {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF")
}

// classifyGenAIError maps a genai failure onto the adapter error taxonomy.
func classifyGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 402, 403, 429:
			return fmt.Errorf("%w: %v", ErrServiceRejected, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}
