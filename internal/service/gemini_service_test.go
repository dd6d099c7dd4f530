package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limit", err: genai.APIError{Code: http.StatusTooManyRequests}, want: true},
		{name: "server error", err: genai.APIError{Code: http.StatusInternalServerError}, want: true},
		{name: "bad gateway", err: genai.APIError{Code: http.StatusBadGateway}, want: true},
		{name: "unauthorized", err: genai.APIError{Code: http.StatusUnauthorized}, want: false},
		{name: "bad request", err: genai.APIError{Code: http.StatusBadRequest}, want: false},
		{name: "context canceled", err: errors.New("context canceled"), want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "unknown", err: errors.New("something else"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestClassifyGenAIError(t *testing.T) {
	rejected := []int{401, 402, 403, 429}
	for _, code := range rejected {
		err := classifyGenAIError(genai.APIError{Code: code})
		assert.True(t, errors.Is(err, ErrServiceRejected), "code %d", code)
	}

	err := classifyGenAIError(genai.APIError{Code: 500})
	assert.True(t, errors.Is(err, ErrServiceUnavailable))

	err = classifyGenAIError(fmt.Errorf("plain transport failure"))
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}

func TestCalculateBackoffIsBounded(t *testing.T) {
	s := &GeminiService{
		baseDelay: time.Second,
		maxDelay:  20 * time.Second,
	}

	var prev time.Duration
	for attempt := 1; attempt <= 6; attempt++ {
		delay := s.calculateBackoff(attempt)
		assert.LessOrEqual(t, delay, s.maxDelay+s.maxDelay/4)
		assert.GreaterOrEqual(t, delay, prev)
		prev = delay
		if delay >= s.maxDelay {
			break
		}
	}
}
