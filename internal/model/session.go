package model

import (
	"time"

	"github.com/google/uuid"
)

// Session lifecycle statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Answer evaluation statuses. EvalFallback marks results produced locally
// after an AI call or its parsing failed; a score of 50 alone is not enough
// to detect fallback since a genuine answer may also score 50.
const (
	EvalEvaluated = "evaluated"
	EvalFallback  = "fallback"
)

// Answer is one immutable response to one question, created at submit or
// skip time. Exactly one Answer exists per question index.
type Answer struct {
	QuestionIndex     int      `json:"question_index"`
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	Score             float64  `json:"score"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	TechnicalAccuracy float64  `json:"technical_accuracy"`
	Communication     float64  `json:"communication"`
	Completeness      float64  `json:"completeness"`
	EvalStatus        string   `json:"eval_status"`
}

// SkillGapResult is the resume-vs-job-description comparison attached to a
// session at completion. Facet sources record whether each part came from
// the AI service or the local keyword heuristic.
type SkillGapResult struct {
	CompatibilityScore float64  `json:"compatibility_score"`
	MatchedSkills      []string `json:"matched_skills"`
	MissingSkills      []string `json:"missing_skills"`
	KeywordGaps        []string `json:"keyword_gaps"`
	ExperienceNote     string   `json:"experience_note"`
	Suggestions        []string `json:"suggestions"`
	OptimizationTips   []string `json:"optimization_tips"`
	ScoreSource        string   `json:"score_source"`
	SkillsSource       string   `json:"skills_source"`
	SuggestionsSource  string   `json:"suggestions_source"`
}

type InterviewSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID    string          `gorm:"type:varchar(64);index" json:"candidate_id"`
	JobRole        string          `gorm:"type:varchar(120)" json:"job_role"`
	Domain         string          `gorm:"type:varchar(80)" json:"domain"`
	JobDescription string          `gorm:"type:text" json:"job_description"`
	ResumeText     string          `gorm:"type:text" json:"resume_text"`
	Questions      []string        `gorm:"type:jsonb;serializer:json" json:"questions"`
	Answers        []Answer        `gorm:"type:jsonb;serializer:json" json:"answers"`
	CurrentIndex   int             `json:"current_question_index"`
	Status         string          `gorm:"type:varchar(20);index" json:"status"`
	OverallScore   float64         `json:"overall_score"`
	TechnicalScore float64         `json:"technical_score"`
	CommScore      float64         `json:"communication_score"`
	Recommendation string          `gorm:"type:text" json:"recommendation"`
	SkillGap       *SkillGapResult `gorm:"type:jsonb;serializer:json" json:"skill_gap,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

func (s *InterviewSession) TableName() string {
	return "interview_sessions"
}

// AnswerAt returns the answer recorded for a question index, if any.
func (s *InterviewSession) AnswerAt(index int) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionIndex == index {
			return a, true
		}
	}
	return Answer{}, false
}
