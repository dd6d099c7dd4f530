package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "test/model",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}
	return NewOpenRouterService(cfg, zap.NewNop())
}

func TestOpenRouterCompleteSuccess(t *testing.T) {
	var gotAuth, gotBody string
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"score\": 70}"}}]}`))
	})

	text, err := svc.Complete(context.Background(), "evaluate this")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 70}`, text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test/model", gjson.Get(gotBody, "model").String())
	assert.Equal(t, "evaluate this", gjson.Get(gotBody, "messages.0.content").String())
}

func TestOpenRouterCompleteRejected(t *testing.T) {
	for _, status := range []int{
		http.StatusUnauthorized,
		http.StatusPaymentRequired,
		http.StatusForbidden,
		http.StatusTooManyRequests,
	} {
		svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := svc.Complete(context.Background(), "prompt")
		assert.True(t, errors.Is(err, ErrServiceRejected), "status %d", status)
	}
}

func TestOpenRouterCompleteServerError(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Complete(context.Background(), "prompt")
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}

func TestOpenRouterCompleteEmptyCompletion(t *testing.T) {
	svc := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.Complete(context.Background(), "prompt")
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}

func TestOpenRouterCompleteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	cfg := &config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "test/model",
		BaseURL: server.URL,
		Timeout: time.Second,
	}
	svc := NewOpenRouterService(cfg, zap.NewNop())

	_, err := svc.Complete(context.Background(), "prompt")
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}
