package usecase

import (
	"math"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/model"
)

type answerAggregate struct {
	Overall       float64
	Technical     float64
	Communication float64
}

// aggregateAnswers computes the session-level score means. The overall
// score is the arithmetic mean of answer scores rounded to the nearest
// integer; an empty answer list yields zero.
func aggregateAnswers(answers []model.Answer) answerAggregate {
	if len(answers) == 0 {
		return answerAggregate{}
	}

	var scoreSum, techSum, commSum float64
	for _, a := range answers {
		scoreSum += a.Score
		techSum += a.TechnicalAccuracy
		commSum += a.Communication
	}
	n := float64(len(answers))

	return answerAggregate{
		Overall:       math.Round(scoreSum / n),
		Technical:     math.Round(techSum/n*100) / 100,
		Communication: math.Round(commSum/n*100) / 100,
	}
}

// recommendationFor picks the qualitative recommendation from the
// configured score bands, which are ordered by MinScore descending.
func recommendationFor(overall float64, bands []config.ScoreBand) string {
	for _, band := range bands {
		if overall >= band.MinScore {
			return band.Recommendation
		}
	}
	if len(bands) > 0 {
		return bands[len(bands)-1].Recommendation
	}
	return ""
}
