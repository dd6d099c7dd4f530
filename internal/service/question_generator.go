package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"go.uber.org/zap"
)

// truncation bounds keep prompts inside sane token budgets.
const maxPromptContextLen = 1500

// QuestionGenerator produces the ordered question list a session starts
// with. Generation failures are absorbed into a deterministic question bank
// so session creation never depends on the AI service being up.
type QuestionGenerator struct {
	completer Completer
	cfg       *config.InterviewConfig
	logger    *zap.Logger
}

func NewQuestionGenerator(completer Completer, cfg *config.InterviewConfig, logger *zap.Logger) *QuestionGenerator {
	return &QuestionGenerator{completer: completer, cfg: cfg, logger: logger}
}

// Generate returns up to n questions, where n is clamped to the configured
// bounds. The session uses the list actually returned, so a short reply
// simply yields a shorter interview.
func (g *QuestionGenerator) Generate(ctx context.Context, jobRole, domain, resumeText, jobDescription string, n int) []string {
	n = g.clampCount(n)

	prompt := fmt.Sprintf(`You are a senior technical interviewer with 20+ years of experience.

Generate %d personalized technical interview questions based on:

JOB ROLE: %s
DOMAIN: %s
CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s

Requirements:
- Questions should be personalized to the candidate's experience level
- Mix behavioral, technical, and situational questions
- Questions should align with the specific job requirements
- Make them challenging but fair

Format (return ONLY a valid JSON array, no markdown):
["Question 1?", "Question 2?", ...]

Generate exactly %d questions.`, n, jobRole, domain,
		truncate(resumeText, maxPromptContextLen),
		truncate(jobDescription, maxPromptContextLen), n)

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("question generation fell back", zap.Error(err))
		return fallbackQuestions(domain, n)
	}

	questions, err := parseQuestionList(raw)
	if err != nil {
		g.logger.Warn("question generation output unusable", zap.Error(err))
		return fallbackQuestions(domain, n)
	}

	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

func (g *QuestionGenerator) clampCount(n int) int {
	if n <= 0 {
		n = g.cfg.DefaultQuestionCount
	}
	if n < g.cfg.MinQuestionCount {
		n = g.cfg.MinQuestionCount
	}
	if n > g.cfg.MaxQuestionCount {
		n = g.cfg.MaxQuestionCount
	}
	return n
}

func parseQuestionList(raw string) ([]string, error) {
	doc, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	questions := stringListField(doc, "@this", 0)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in output", ErrDecodeFailed)
	}
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if trimmed := strings.TrimSpace(q); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no questions in output", ErrDecodeFailed)
	}
	return out, nil
}

func fallbackQuestions(domain string, count int) []string {
	if domain == "" {
		domain = "software engineering"
	}
	bank := []string{
		fmt.Sprintf("Walk us through your most challenging %s project and how you solved it.", domain),
		"What experience do you have with the tech stack mentioned in the job description?",
		fmt.Sprintf("Describe your approach to designing a scalable %s solution.", domain),
		fmt.Sprintf("Tell us about a time you had to learn a new technology quickly in %s.", domain),
		fmt.Sprintf("How do you stay updated with the latest trends and best practices in %s?", domain),
		fmt.Sprintf("What testing and debugging strategies do you use in your %s work?", domain),
		fmt.Sprintf("Describe your experience working in a team environment for %s projects.", domain),
		fmt.Sprintf("What would you do if you faced a critical production issue in %s?", domain),
		fmt.Sprintf("How do you approach code review and receiving feedback on your %s code?", domain),
		fmt.Sprintf("What are your long-term career goals in %s?", domain),
	}
	if count > len(bank) {
		count = len(bank)
	}
	return bank[:count]
}
