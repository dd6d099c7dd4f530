package service

import (
	"context"
	"sync"
	"testing"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompleter records every prompt and replies from a fixed script. Safe
// for concurrent use.
type fakeCompleter struct {
	mu       sync.Mutex
	prompts  []string
	response string
	err      error
	// respond, when set, overrides response/err per prompt.
	respond func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(prompt)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func testInterviewConfig() *config.InterviewConfig {
	return &config.InterviewConfig{
		DefaultQuestionCount: 5,
		MinQuestionCount:     1,
		MaxQuestionCount:     20,
		FallbackScore:        50,
		SkippedScore:         15,
		ScoreBands: []config.ScoreBand{
			{MinScore: 80, Recommendation: "Strong candidate - Recommend for next round"},
			{MinScore: 65, Recommendation: "Qualified candidate - Good fit with some improvements"},
			{MinScore: 50, Recommendation: "Adequate candidate - May need additional screening"},
			{MinScore: 0, Recommendation: "Needs improvement - Consider feedback areas"},
		},
	}
}

func TestEvaluateParsesCompletion(t *testing.T) {
	completer := &fakeCompleter{
		response: `{"score": 82, "feedback": "Clear and well structured.", "strengths": ["depth"], "improvements": ["examples"], "technical_accuracy": 85, "communication": 80, "completeness": 78}`,
	}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "Explain goroutines.", "They are lightweight threads managed by the runtime.", "Backend Engineer")

	assert.Equal(t, 82.0, result.Score)
	assert.Equal(t, "Clear and well structured.", result.Feedback)
	assert.Equal(t, []string{"depth"}, result.Strengths)
	assert.Equal(t, []string{"examples"}, result.Improvements)
	assert.Equal(t, 85.0, result.TechnicalAccuracy)
	assert.Equal(t, 80.0, result.Communication)
	assert.Equal(t, 78.0, result.Completeness)
	assert.Equal(t, model.EvalEvaluated, result.Status)
	require.Equal(t, 1, completer.callCount())
	assert.Contains(t, completer.prompts[0], "Explain goroutines.")
	assert.Contains(t, completer.prompts[0], "Backend Engineer")
}

func TestEvaluateHandlesFencedCompletion(t *testing.T) {
	completer := &fakeCompleter{
		response: "```json\n{\"score\": 64, \"feedback\": \"ok\"}\n```",
	}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "q", "an answer", "role")

	assert.Equal(t, 64.0, result.Score)
	assert.Equal(t, model.EvalEvaluated, result.Status)
}

func TestEvaluateClampsOutOfRangeScore(t *testing.T) {
	completer := &fakeCompleter{
		response: `{"score": 140, "feedback": "overenthusiastic"}`,
	}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "q", "an answer", "role")

	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, model.EvalEvaluated, result.Status)
}

func TestEvaluateFallsBackOnServiceFailure(t *testing.T) {
	completer := &fakeCompleter{err: ErrServiceUnavailable}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "q", "an answer", "role")

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, model.EvalFallback, result.Status)
	assert.NotEmpty(t, result.Feedback)
}

func TestEvaluateFallsBackOnUnusableOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "prose only", response: "I would rate this answer quite highly."},
		{name: "missing feedback", response: `{"score": 70}`},
		{name: "non numeric score", response: `{"score": "excellent", "feedback": "good"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			completer := &fakeCompleter{response: tc.response}
			evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

			result := evaluator.Evaluate(context.Background(), "q", "an answer", "role")

			assert.Equal(t, 50.0, result.Score)
			assert.Equal(t, model.EvalFallback, result.Status)
		})
	}
}

func TestEvaluateSkipsExternalCallForEmptyAnswer(t *testing.T) {
	completer := &fakeCompleter{response: `{"score": 90, "feedback": "should not be used"}`}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "q", "   ", "role")

	assert.Equal(t, 0, completer.callCount())
	assert.Equal(t, 15.0, result.Score)
	assert.Equal(t, model.EvalEvaluated, result.Status)
	assert.NotEmpty(t, result.Improvements)
}

func TestEvaluateTruncatesOversizedFeedback(t *testing.T) {
	long := make([]byte, maxFeedbackLen+100)
	for i := range long {
		long[i] = 'x'
	}
	completer := &fakeCompleter{
		response: `{"score": 50, "feedback": "` + string(long) + `"}`,
	}
	evaluator := NewAnswerEvaluator(completer, testInterviewConfig(), zap.NewNop())

	result := evaluator.Evaluate(context.Background(), "q", "an answer", "role")

	assert.Len(t, result.Feedback, maxFeedbackLen)
}
