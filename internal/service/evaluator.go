package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"go.uber.org/zap"
)

const (
	maxFeedbackLen = 500
	maxListItems   = 5
)

// EvaluationResult is the transient outcome of scoring one answer. Status
// distinguishes genuine evaluations from locally produced fallbacks; the
// numeric score alone cannot, since a real answer may legitimately score the
// neutral value.
type EvaluationResult struct {
	Score             float64
	Feedback          string
	Strengths         []string
	Improvements      []string
	TechnicalAccuracy float64
	Communication     float64
	Completeness      float64
	Status            string
}

// AnswerEvaluator scores a single answer against its question. External
// failures never escape Evaluate; they are converted into fallback results
// so the session flow has no failure branch.
type AnswerEvaluator struct {
	completer Completer
	cfg       *config.InterviewConfig
	logger    *zap.Logger
}

func NewAnswerEvaluator(completer Completer, cfg *config.InterviewConfig, logger *zap.Logger) *AnswerEvaluator {
	return &AnswerEvaluator{completer: completer, cfg: cfg, logger: logger}
}

func (e *AnswerEvaluator) Evaluate(ctx context.Context, question, answer, roleContext string) EvaluationResult {
	// Skips and empty answers have a known trivial outcome; don't waste an
	// external call on them.
	if strings.TrimSpace(answer) == "" {
		return EvaluationResult{
			Score:        e.cfg.SkippedScore,
			Feedback:     "No answer was submitted for this question.",
			Strengths:    []string{},
			Improvements: []string{"Attempt every question, even with a partial answer"},
			Status:       model.EvalEvaluated,
		}
	}

	prompt := buildEvaluationPrompt(question, answer, roleContext)

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("answer evaluation fell back", zap.Error(err))
		return e.fallbackResult()
	}

	result, err := parseEvaluation(raw)
	if err != nil {
		e.logger.Warn("answer evaluation output unusable",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
		)
		return e.fallbackResult()
	}
	return result
}

func (e *AnswerEvaluator) fallbackResult() EvaluationResult {
	return EvaluationResult{
		Score:        e.cfg.FallbackScore,
		Feedback:     "Evaluation could not be completed. The answer was recorded and a neutral score applied.",
		Strengths:    []string{},
		Improvements: []string{},
		Status:       model.EvalFallback,
	}
}

func buildEvaluationPrompt(question, answer, roleContext string) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Evaluate this answer and provide a detailed score between 0 and 100.

QUESTION: %s

CANDIDATE ANSWER: %s

JOB CONTEXT: %s

Evaluate this answer fairly. For even short answers or single words, provide a realistic score (not necessarily high).

Return ONLY this JSON format (no markdown, no extra text, just raw JSON):
{"score": 45, "feedback": "example", "strengths": ["example"], "improvements": ["example"], "technical_accuracy": 45, "communication": 45, "completeness": 45}

CRITICAL: Your response must start with { and end with } with no other text before or after.`, question, answer, roleContext)
}

func parseEvaluation(raw string) (EvaluationResult, error) {
	doc, err := ExtractJSON(raw)
	if err != nil {
		return EvaluationResult{}, err
	}
	if err := requireFields(doc, "score", "feedback"); err != nil {
		return EvaluationResult{}, err
	}
	score, err := numberField(doc, "score")
	if err != nil {
		return EvaluationResult{}, err
	}

	result := EvaluationResult{
		Score:        clampScore(score),
		Feedback:     truncate(strings.TrimSpace(stringFieldOf(doc, "feedback")), maxFeedbackLen),
		Strengths:    stringListField(doc, "strengths", maxListItems),
		Improvements: stringListField(doc, "improvements", maxListItems),
		Status:       model.EvalEvaluated,
	}

	// Sub-scores are optional; a missing dimension stays zero rather than
	// failing the whole decode.
	if v, err := numberField(doc, "technical_accuracy"); err == nil {
		result.TechnicalAccuracy = clampScore(v)
	}
	if v, err := numberField(doc, "communication"); err == nil {
		result.Communication = clampScore(v)
	}
	if v, err := numberField(doc, "completeness"); err == nil {
		result.Completeness = clampScore(v)
	}

	return result, nil
}
