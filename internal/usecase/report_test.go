package usecase

import (
	"testing"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregateAnswers(t *testing.T) {
	tests := []struct {
		name          string
		scores        []float64
		wantOverall   float64
		wantTechnical float64
	}{
		{name: "exact mean", scores: []float64{60, 80, 70}, wantOverall: 70, wantTechnical: 70},
		{name: "rounds up", scores: []float64{70, 75}, wantOverall: 73, wantTechnical: 72.5},
		{name: "single answer", scores: []float64{42}, wantOverall: 42, wantTechnical: 42},
		{name: "empty", scores: nil, wantOverall: 0, wantTechnical: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			answers := make([]model.Answer, 0, len(tc.scores))
			for i, score := range tc.scores {
				answers = append(answers, model.Answer{
					QuestionIndex:     i,
					Score:             score,
					TechnicalAccuracy: score,
					Communication:     score,
				})
			}

			got := aggregateAnswers(answers)
			assert.Equal(t, tc.wantOverall, got.Overall)
			assert.Equal(t, tc.wantTechnical, got.Technical)
			assert.Equal(t, tc.wantTechnical, got.Communication)
		})
	}
}

func TestRecommendationFor(t *testing.T) {
	bands := []config.ScoreBand{
		{MinScore: 80, Recommendation: "strong"},
		{MinScore: 65, Recommendation: "qualified"},
		{MinScore: 50, Recommendation: "adequate"},
		{MinScore: 0, Recommendation: "needs improvement"},
	}

	tests := []struct {
		overall float64
		want    string
	}{
		{overall: 95, want: "strong"},
		{overall: 80, want: "strong"},
		{overall: 79, want: "qualified"},
		{overall: 65, want: "qualified"},
		{overall: 50, want: "adequate"},
		{overall: 49, want: "needs improvement"},
		{overall: 0, want: "needs improvement"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, recommendationFor(tc.overall, bands), "overall %v", tc.overall)
	}
}

func TestRecommendationForEmptyBands(t *testing.T) {
	assert.Equal(t, "", recommendationFor(70, nil))
}
