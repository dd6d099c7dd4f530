package config

import (
	"os"
	"strconv"
	"sync"
)

// ScoreBand maps a minimum overall score to a recommendation string.
type ScoreBand struct {
	MinScore       float64
	Recommendation string
}

type InterviewConfig struct {
	DefaultQuestionCount int
	MinQuestionCount     int
	MaxQuestionCount     int

	// FallbackScore is returned when the AI service or its output parsing
	// fails. SkippedScore is the local score for empty answers.
	FallbackScore float64
	SkippedScore  float64

	// ScoreBands must be ordered by MinScore descending. The last band is
	// the catch-all.
	ScoreBands []ScoreBand
}

var (
	interviewConfig *InterviewConfig
	interviewOnce   sync.Once
)

func LoadInterviewConfig() *InterviewConfig {
	interviewOnce.Do(func() {
		defaultCount := 5
		if raw := os.Getenv("INTERVIEW_DEFAULT_QUESTIONS"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				defaultCount = parsed
			}
		}
		interviewConfig = &InterviewConfig{
			DefaultQuestionCount: defaultCount,
			MinQuestionCount:     1,
			MaxQuestionCount:     20,
			FallbackScore:        50,
			SkippedScore:         15,
			ScoreBands: []ScoreBand{
				{MinScore: 80, Recommendation: "Strong candidate - Recommend for next round"},
				{MinScore: 65, Recommendation: "Qualified candidate - Good fit with some improvements"},
				{MinScore: 50, Recommendation: "Adequate candidate - May need additional screening"},
				{MinScore: 0, Recommendation: "Needs improvement - Consider feedback areas"},
			},
		}
	})
	return interviewConfig
}
