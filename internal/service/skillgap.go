package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"go.uber.org/zap"
)

const (
	maxSkillItems      = 20
	maxSuggestionItems = 10

	// Facet sources recorded on the result.
	sourceAI       = "ai"
	sourceFallback = "fallback"
)

// SkillGapAnalyzer compares resume text against a job description. The
// analysis is split into three independent prompt round-trips so one failed
// facet never voids the others; each facet falls back on its own to the
// local keyword heuristic. Analyze always returns a complete result.
type SkillGapAnalyzer struct {
	completer Completer
	cfg       *config.InterviewConfig
	logger    *zap.Logger
}

func NewSkillGapAnalyzer(completer Completer, cfg *config.InterviewConfig, logger *zap.Logger) *SkillGapAnalyzer {
	return &SkillGapAnalyzer{completer: completer, cfg: cfg, logger: logger}
}

func (a *SkillGapAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) model.SkillGapResult {
	heuristic := buildHeuristicAnalysis(resumeText, jobDescription, a.cfg.FallbackScore)

	// Without both texts there is nothing for the AI to compare; the
	// heuristic is the whole answer.
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		a.logger.Warn("skill gap analysis ran without resume or job description")
		return heuristic
	}

	result := heuristic

	// The three facets populate disjoint fields, so they are safe to run
	// concurrently.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		score, note, err := a.fetchCompatibility(ctx, resumeText, jobDescription)
		if err != nil {
			a.logger.Warn("compatibility facet fell back", zap.Error(err))
			return
		}
		result.CompatibilityScore = score
		result.ExperienceNote = note
		result.ScoreSource = sourceAI
	}()

	go func() {
		defer wg.Done()
		matched, missing, gaps, err := a.fetchSkills(ctx, resumeText, jobDescription)
		if err != nil {
			a.logger.Warn("skills facet fell back", zap.Error(err))
			return
		}
		result.MatchedSkills = mergeUniqueStrings(matched, heuristic.MatchedSkills, maxSkillItems)
		result.MissingSkills = mergeUniqueStrings(missing, heuristic.MissingSkills, maxSkillItems)
		result.KeywordGaps = mergeUniqueStrings(gaps, heuristic.KeywordGaps, maxSkillItems)
		result.SkillsSource = sourceAI
	}()

	go func() {
		defer wg.Done()
		suggestions, tips, err := a.fetchSuggestions(ctx, resumeText, jobDescription)
		if err != nil {
			a.logger.Warn("suggestions facet fell back", zap.Error(err))
			return
		}
		result.Suggestions = suggestions
		result.OptimizationTips = tips
		result.SuggestionsSource = sourceAI
	}()

	wg.Wait()
	return result
}

func (a *SkillGapAnalyzer) fetchCompatibility(ctx context.Context, resumeText, jobDescription string) (float64, string, error) {
	prompt := fmt.Sprintf(`You are an applicant screening expert. Evaluate how well this resume matches the job description, considering keyword alignment, relevant skills, technical qualifications and experience level fit.

RESUME:
%s

JOB DESCRIPTION:
%s

Return ONLY a JSON object:
{"score": <number 0-100>, "reasoning": "<brief note on experience alignment>"}

IMPORTANT: Return ONLY valid JSON, no markdown, no explanation.`, resumeText, jobDescription)

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return 0, "", err
	}
	doc, err := ExtractJSON(raw)
	if err != nil {
		return 0, "", err
	}
	score, err := numberField(doc, "score")
	if err != nil {
		return 0, "", err
	}
	note := truncate(strings.TrimSpace(stringFieldOf(doc, "reasoning")), maxFeedbackLen)
	return clampScore(score), note, nil
}

func (a *SkillGapAnalyzer) fetchSkills(ctx context.Context, resumeText, jobDescription string) (matched, missing, gaps []string, err error) {
	prompt := fmt.Sprintf(`Compare the resume and job description below.

RESUME:
%s

JOB DESCRIPTION:
%s

Return ONLY a JSON object:
{"matched": ["skills present in BOTH texts"], "missing": ["technical skills required by the job but absent from the resume"], "keyword_gaps": ["important keywords in the job description missing from the resume"]}

Only technical skills, no soft skills.
IMPORTANT: Return ONLY valid JSON, no markdown, no explanation.`, resumeText, jobDescription)

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := ExtractJSON(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireFields(doc, "matched", "missing"); err != nil {
		return nil, nil, nil, err
	}
	matched = stringListField(doc, "matched", maxSkillItems)
	missing = stringListField(doc, "missing", maxSkillItems)
	gaps = stringListField(doc, "keyword_gaps", maxSkillItems)
	if len(gaps) == 0 {
		gaps = missing
	}
	return matched, missing, gaps, nil
}

func (a *SkillGapAnalyzer) fetchSuggestions(ctx context.Context, resumeText, jobDescription string) (suggestions, tips []string, err error) {
	prompt := fmt.Sprintf(`You are a professional resume coach. Analyze this resume against the job description.

RESUME:
%s

JOB DESCRIPTION:
%s

Return ONLY a JSON object:
{"improvements": ["6-8 specific, actionable resume improvements for this position"], "optimization_tips": ["5-7 tips to improve automated screening compatibility"]}

Each item must be concrete and implementable.
IMPORTANT: Return ONLY valid JSON, no markdown, no explanation.`, resumeText, jobDescription)

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ExtractJSON(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := requireFields(doc, "improvements"); err != nil {
		return nil, nil, err
	}
	return stringListField(doc, "improvements", maxSuggestionItems),
		stringListField(doc, "optimization_tips", maxSuggestionItems),
		nil
}

// buildHeuristicAnalysis produces a deterministic skill-gap result from the
// keyword lexicon alone. It is both the baseline merged into AI results and
// the per-facet fallback.
func buildHeuristicAnalysis(resumeText, jobDescription string, neutralScore float64) model.SkillGapResult {
	resumeTerms := extractTechnicalTerms(resumeText)
	jdTerms := extractTechnicalTerms(jobDescription)

	resumeSet := map[string]bool{}
	for _, term := range resumeTerms {
		resumeSet[normalizeTerm(term)] = true
	}

	matched := []string{}
	missing := []string{}
	for _, term := range jdTerms {
		if resumeSet[normalizeTerm(term)] {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}

	score := neutralScore
	if len(jdTerms) > 0 {
		coverage := float64(len(matched)) / float64(len(jdTerms))
		score = clampScore(35 + coverage*60)
	}

	if len(matched) > maxSkillItems {
		matched = matched[:maxSkillItems]
	}
	if len(missing) > maxSkillItems {
		missing = missing[:maxSkillItems]
	}

	return model.SkillGapResult{
		CompatibilityScore: score,
		MatchedSkills:      matched,
		MissingSkills:      missing,
		KeywordGaps:        missing,
		ExperienceNote:     "",
		Suggestions:        []string{},
		OptimizationTips:   []string{},
		ScoreSource:        sourceFallback,
		SkillsSource:       sourceFallback,
		SuggestionsSource:  sourceFallback,
	}
}
